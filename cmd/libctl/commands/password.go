package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/security/password"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash an admin password for ADMIN_PASSWORD_HASH",
	Long: `Prompt for a password (masked) and print its argon2id PHC string.
When stdin is not a terminal the first line of stdin is used.
Passwords built from $ADMIN_EMAIL or the library name are graded weaker.

Examples:
  libctl hash-password
  echo 's3cret-passphrase' | libctl hash-password`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, err := readPassword(cmd)
		if err != nil {
			return err
		}
		hints := password.Hints(os.Getenv("ADMIN_EMAIL"), models.DefaultSettings().LibraryName)
		plain, warn, err := password.Validate(plain, hints...)
		if err != nil {
			return fmt.Errorf("password must be at least %d characters", password.MinLen)
		}
		if warn != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s %s\n", warn.Message, strings.Join(warn.Suggestions, " "))
		}

		phc, err := password.NewHasher(password.LoadParamsFromEnv()).Hash(plain)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), phc)
		return nil
	},
}

func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		first, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		fmt.Fprint(cmd.ErrOrStderr(), "Confirm: ")
		second, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		if string(first) != string(second) {
			return "", errors.New("passwords do not match")
		}
		return string(first), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
