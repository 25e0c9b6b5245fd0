package commands

import (
	"os"

	"github.com/spf13/cobra"

	"veilchat/internal/console"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Wait for one client and chat with it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := unlockKey(); err != nil {
				return err
			}
			ln, err := appCtx.Listen()
			if err != nil {
				return err
			}

			in := console.Open(os.Stdin, os.Stdout)
			defer in.Close()
			out := console.NewPrinter(os.Stdout)

			err = appCtx.Serve(cmd.Context(), ln, passphrase, in, out)
			out.Notice("Server shutdown.")
			return err
		},
	}
	return cmd
}
