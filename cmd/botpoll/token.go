package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/keepmind9/botpoll/internal/keychain"
	"github.com/spf13/cobra"
)

var (
	tokenAccount string

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Manage the bot token stored in the system keychain",
	}

	tokenSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Store a bot token read from stdin",
		Long: `Read a bot token from stdin and store it in the system keychain.

Reference it from the configuration with:
  bot:
    token_keyring_account: "<account>"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := keychain.Set(tokenAccount, token); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Token stored for account %q\n", tokenAccount)
			return nil
		},
	}
)

// readToken returns the first non-empty line of r.
func readToken(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if token := strings.TrimSpace(scanner.Text()); token != "" {
			return token, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return "", fmt.Errorf("no token given on stdin")
}

func init() {
	tokenSetCmd.Flags().StringVarP(&tokenAccount, "account", "a", "default", "Keychain account name")
	tokenCmd.AddCommand(tokenSetCmd)
}
