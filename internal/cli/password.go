package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/group7/resmatch/internal/pkg/auth"
)

var verifyHash string

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <plaintext>",
	Short: "Print a bcrypt hash for generator.password_hash",
	Long: `Hashes the given password with the cost used by the generated accounts and prints it to stdout.
With --verify, checks the password against an existing hash instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runHashPassword,
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)

	hashPasswordCmd.Flags().StringVar(&verifyHash, "verify", "", "Existing hash to check the password against")
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	password := args[0]

	if verifyHash != "" {
		if err := auth.ValidateHash(verifyHash); err != nil {
			return fmt.Errorf("invalid hash: %w", err)
		}
		if !auth.CheckPassword(verifyHash, password) {
			return errors.New("password does not match hash")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
