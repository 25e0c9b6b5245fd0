package commands

import (
	"os"

	"github.com/spf13/cobra"

	"veilchat/internal/console"
)

func connectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect [address]",
		Short: "Verify the operator, connect to a server and chat",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := unlockKey(); err != nil {
				return err
			}
			address := ""
			if len(args) == 1 {
				address = args[0]
			}

			in := console.Open(os.Stdin, os.Stdout)
			defer in.Close()
			out := console.NewPrinter(os.Stdout)

			err := appCtx.Connect(cmd.Context(), address, passphrase, in, out)
			out.Notice("Connection closed.")
			return err
		},
	}
	return cmd
}
