package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"defense-dash/internal/credentials"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// test seams for the terminal
var (
	readPassword           = term.ReadPassword
	isTerminal             = term.IsTerminal
	stdin        io.Reader = os.Stdin
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage dashboard accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Register a new account",
	Long: `Register a new account in the credential file. The password is read
from the terminal without echo, or from the first line of stdin when
stdin is not a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runUserAdd,
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	username := args[0]

	password, err := promptPassword(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	store := credentials.NewStore(cfg.UsersFile)
	if err := store.Register(cmd.Context(), username, password); err != nil {
		if errors.Is(err, credentials.ErrDuplicateUser) {
			return fmt.Errorf("user %q: %w", username, err)
		}
		return err
	}

	log.Info("user registered", zap.String("username", username), zap.String("file", store.Path()))
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", username)
	return nil
}

func promptPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(w, "Password: ")
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
