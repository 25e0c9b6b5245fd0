package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"veilchat/internal/console"
)

func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Move the session key between peers",
	}
	cmd.AddCommand(keyExportCmd(), keyImportCmd())
	return cmd
}

func keyExportCmd() *cobra.Command {
	var transferPass string
	cmd := &cobra.Command{
		Use:   "export <file|->",
		Short: "Write the key to an encrypted transfer file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := unlockKey(); err != nil {
				return err
			}
			tp, err := transferPassphrase(transferPass, true)
			if err != nil {
				return err
			}
			armored, err := appCtx.Keys.ExportKey(passphrase, tp)
			if err != nil {
				return err
			}
			if args[0] == "-" {
				_, err = os.Stdout.Write(armored)
				return err
			}
			if err := os.WriteFile(args[0], armored, 0o600); err != nil {
				return err
			}
			fmt.Printf("Key exported to %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&transferPass, "transfer-passphrase", "t", "", "passphrase protecting the transfer file")
	return cmd
}

func keyImportCmd() *cobra.Command {
	var (
		transferPass string
		force        bool
	)
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Store the key from a transfer file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				armored []byte
				err     error
			)
			if args[0] == "-" {
				armored, err = io.ReadAll(os.Stdin)
			} else {
				armored, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			tp, err := transferPassphrase(transferPass, false)
			if err != nil {
				return err
			}
			fp, err := appCtx.Keys.ImportKey(passphrase, tp, armored, force)
			if err != nil {
				return err
			}
			fmt.Printf("Key imported to %s\nFingerprint: %s\n", appCtx.KeyStore.Path(), fp)
			return nil
		},
	}
	cmd.Flags().StringVarP(&transferPass, "transfer-passphrase", "t", "", "passphrase protecting the transfer file")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing key")
	return cmd
}

func transferPassphrase(given string, confirm bool) (string, error) {
	if given != "" {
		return given, nil
	}
	p, err := console.ReadPassphrase("Transfer passphrase: ", os.Stdin, os.Stderr)
	if err != nil {
		return "", err
	}
	if confirm {
		again, err := console.ReadPassphrase("Repeat transfer passphrase: ", os.Stdin, os.Stderr)
		if err != nil {
			return "", err
		}
		if again != p {
			return "", errors.New("transfer passphrases do not match")
		}
	}
	return p, nil
}
