package commands

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"veilchat/internal/auth"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage operator authentication",
	}
	cmd.AddCommand(authEnrollCmd())
	return cmd
}

func authEnrollCmd() *cobra.Command {
	var account, issuer string
	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Enroll an authenticator app (TOTP)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if account == "" {
				u, err := user.Current()
				if err != nil {
					return fmt.Errorf("account required (--account)")
				}
				account = u.Username
			}
			e, url, err := auth.Enroll(appCtx.Enrollments, issuer, account)
			if err != nil {
				return err
			}
			fmt.Printf("Enrolled %s (%s).\nSecret: %s\nProvisioning URL: %s\n",
				e.Account, e.Issuer, e.Secret, url)
			fmt.Println("Add the secret or URL to your authenticator app.")
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "account name shown in the authenticator (default: OS user)")
	cmd.Flags().StringVar(&issuer, "issuer", auth.DefaultIssuer, "issuer shown in the authenticator")
	return cmd
}
