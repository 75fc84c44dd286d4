package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"defense-dash/internal/config"
	"defense-dash/internal/credentials"
	"defense-dash/internal/dataset"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixture string

func TestMain(m *testing.M) {
	p, err := filepath.Abs(filepath.Join("..", "..", "internal", "dataset", "testdata", "candidates.csv"))
	if err != nil {
		panic(err)
	}
	fixture = p
	os.Exit(m.Run())
}

// resetFlags returns the shared command tree to its pristine flag state so
// every test parses its arguments from scratch.
func resetFlags(t *testing.T) {
	t.Helper()

	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range []*cobra.Command{rootCmd, serveCmd, userCmd, userAddCmd, trainCmd} {
		c.Flags().VisitAll(reset)
	}
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	isTerminal = func(int) bool { return false }
	stdin = strings.NewReader(input)
	t.Cleanup(func() { stdin = nil })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestUserAdd(t *testing.T) {
	t.Chdir(t.TempDir())
	users := filepath.Join(t.TempDir(), "users.csv")

	out, err := execute(t, "s3cret\n", "user", "add", "alice", "--users", users)
	require.NoError(t, err)
	assert.Contains(t, out, "Registered alice")

	store := credentials.NewStore(users)
	assert.NoError(t, store.Authenticate(context.Background(), "alice", "s3cret"))

	_, err = execute(t, "other\n", "user", "add", "alice", "--users", users)
	assert.ErrorIs(t, err, credentials.ErrDuplicateUser)

	creds, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, creds, 1)
}

func TestUserAdd_Terminal(t *testing.T) {
	t.Chdir(t.TempDir())
	users := filepath.Join(t.TempDir(), "users.csv")

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return []byte("typed"), nil }

	resetFlags(t)
	isTerminal = func(int) bool { return true }
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"user", "add", "bob", "--users", users})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Password: ")
	assert.NoError(t, credentials.NewStore(users).Authenticate(context.Background(), "bob", "typed"))
}

func TestTrain_PrintsReport(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "", "train", "--dataset", fixture, "--users", "users.csv")
	require.NoError(t, err)

	assert.Contains(t, out, "rows: 20 cleaned, 0 dropped, 20 after filters")
	assert.Contains(t, out, "split: 16 train, 4 test")
	assert.Contains(t, out, "weighted avg")
	assert.Contains(t, out, "Confusion Matrix:")
}

func TestTrain_MissingDataset(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := execute(t, "", "train", "--dataset", filepath.Join(dir, "absent.csv"), "--users", "users.csv")
	assert.ErrorIs(t, err, dataset.ErrDatasetNotFound)
}

func TestTrain_Filtered(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "", "train", "--dataset", fixture, "--users", "users.csv", "--region", "North,South")
	require.NoError(t, err)
	assert.Contains(t, out, "10 after filters")

	out, err = execute(t, "", "train", "--dataset", fixture, "--users", "users.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "20 after filters")

	out, err = execute(t, "", "train", "--dataset", fixture, "--users", "users.csv", "--region", "East")
	require.NoError(t, err)
	assert.Contains(t, out, "5 after filters")
}

func TestServe_RequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_SECRET", "")

	_, err := execute(t, "", "serve", "--users", "users.csv", "--dataset", "x.csv")
	assert.ErrorIs(t, err, config.ErrNoSessionSecret)
}
