package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	var blockSize int

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate COOKIE_HASH_KEY and COOKIE_BLOCK_KEY values for the cart cookie (base64)",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch blockSize {
			case 16, 24, 32:
			default:
				return fmt.Errorf("--block-size must be 16, 24 or 32")
			}
			hash := make([]byte, 32)
			block := make([]byte, blockSize)
			if _, err := rand.Read(hash); err != nil {
				return err
			}
			if _, err := rand.Read(block); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "export COOKIE_HASH_KEY=%s\n", base64.StdEncoding.EncodeToString(hash))
			fmt.Fprintf(out, "export COOKIE_BLOCK_KEY=%s\n", base64.StdEncoding.EncodeToString(block))
			return nil
		},
	}

	cmd.Flags().IntVar(&blockSize, "block-size", 32, "AES key size in bytes for COOKIE_BLOCK_KEY")
	return cmd
}
