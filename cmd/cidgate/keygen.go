package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cidgate/cidgate/pkg/identity"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a raw ed25519 signing key under the repo data directory",
	Long: `Generate the raw 32-byte ed25519 secret key cidgate signs routes with
(§6's "binary ed25519 secret key file"), writing it to <data-dir>/identity.key.
Fails if a key already exists there; use "serve" for lazy creation instead.`,
	Args: cobra.NoArgs,
	RunE: runKeygen,
}

func runKeygen(cmd *cobra.Command, _ []string) error {
	dataDir := viper.GetString("repo.data_dir")
	path := dataDir + "/identity.key"

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("signing key already exists at %s", path)
	}

	priv, err := identity.Generate(path)
	if err != nil {
		return fmt.Errorf("generating signing key: %w", err)
	}

	pub := priv.Public().(ed25519.PublicKey)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote signing key to %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "public key: %s\n", hex.EncodeToString(pub))
	return nil
}
