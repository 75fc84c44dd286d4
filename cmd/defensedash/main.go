// Command defensedash serves the defense candidate analysis dashboard and
// offers a few maintenance commands around it.
package main

import (
	"fmt"
	"os"

	"defense-dash/internal/config"
	"defense-dash/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool

	flagPort     string
	flagUsers    string
	flagDataset  string
	flagCleaned  string
	flagAuditDSN string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "defensedash",
	Short: "Defense candidate analysis dashboard",
	Long: `defensedash serves a login-gated dashboard over a CSV dataset of
defense candidate evaluations: exploratory charts, a random-forest
classifier retrained on every page view, and a live prediction form.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
		applyFlags(cmd)

		if log, err = logger.New(verbose); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "path to YAML config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&flagUsers, "users", "", "credential file (overrides USERS_FILE)")
	pf.StringVar(&flagDataset, "dataset", "", "input dataset CSV (overrides DATASET_FILE)")
	pf.StringVar(&flagCleaned, "cleaned", "", "cleaned dataset output CSV (overrides CLEANED_FILE)")

	serveCmd.Flags().StringVarP(&flagPort, "port", "p", "", "listen port (overrides SERVER_PORT)")
	serveCmd.Flags().StringVar(&flagAuditDSN, "audit-dsn", "", "audit database DSN (overrides AUDIT_DB_DSN)")

	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(serveCmd, userCmd, trainCmd)
}

// applyFlags lets explicitly set flags win over file and environment.
func applyFlags(cmd *cobra.Command) {
	overrides := []struct {
		name string
		val  string
		dst  *string
	}{
		{"port", flagPort, &cfg.ServerPort},
		{"users", flagUsers, &cfg.UsersFile},
		{"dataset", flagDataset, &cfg.DatasetFile},
		{"cleaned", flagCleaned, &cfg.CleanedFile},
		{"audit-dsn", flagAuditDSN, &cfg.AuditDBDSN},
	}
	for _, o := range overrides {
		if f := cmd.Flags().Lookup(o.name); f != nil && f.Changed {
			*o.dst = o.val
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
