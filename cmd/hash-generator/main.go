// Command hash-generator prints bcrypt hashes in the format stored in
// users.password_hash, for seeding accounts directly in SQL.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/taskflow-api/internal/service/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newCommand() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:           "hash-generator PASSWORD...",
		Short:         "Print a bcrypt hash for each password",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeHashes(cmd.OutOrStdout(), auth.NewBcryptHasher(cost), args)
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")
	return cmd
}

func writeHashes(out io.Writer, hasher auth.PasswordHasher, passwords []string) error {
	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
