package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tarest/internal/auth"
)

func newKeysCmd() *cobra.Command {
	var adminToken string

	c := &cobra.Command{
		Use:   "keys",
		Short: "Generate COOKIE_HASH_KEY and COOKIE_BLOCK_KEY values (base64), optionally ADMIN_TOKEN_BCRYPT",
		RunE: func(cmd *cobra.Command, args []string) error {
			hash := make([]byte, 32)
			block := make([]byte, 32)
			if _, err := rand.Read(hash); err != nil {
				return err
			}
			if _, err := rand.Read(block); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "export COOKIE_HASH_KEY=%s\n", base64.StdEncoding.EncodeToString(hash))
			fmt.Fprintf(out, "export COOKIE_BLOCK_KEY=%s\n", base64.StdEncoding.EncodeToString(block))

			if adminToken != "" {
				h, err := auth.HashToken(adminToken)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "export ADMIN_TOKEN_BCRYPT='%s'\n", h)
			}
			return nil
		},
	}

	c.Flags().StringVar(&adminToken, "admin-token", "", "also print the bcrypt hash of this admin bearer token")
	return c
}
