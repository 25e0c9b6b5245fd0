package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"veilchat/internal/domain"
)

func keygenCmd() *cobra.Command {
	var (
		seed  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create the shared session key",
		Long: "Create the key both peers use. Without --seed a random key is generated and must be\n" +
			"moved to the other peer with `key export`/`key import`. With --seed both peers run\n" +
			"keygen with the same seed and obtain the same key.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				fp  domain.Fingerprint
				err error
			)
			if seed != "" {
				_, fp, err = appCtx.Keys.DeriveKey(passphrase, seed, force)
			} else {
				_, fp, err = appCtx.Keys.GenerateKey(passphrase, force)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Key saved to %s\nFingerprint: %s\n", appCtx.KeyStore.Path(), fp)
			if passphrase == "" {
				fmt.Println("Warning: key stored without a passphrase (use -p to seal it).")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "derive the key from a seed shared with the peer")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing key")
	return cmd
}
