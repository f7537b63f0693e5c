package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-dugout/internal/config"
	"github.com/pable/go-dugout/internal/dugout"
	"github.com/pable/go-dugout/internal/storage"
)

var (
	dbPath  string
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "dugout",
	Short: "Team roster, lineup, schedule and batting-stats tool",
	Long: `Keep a baseball team's roster, batting orders, game schedule and
cumulative batting stats in a local SQLite database.

Stats are counting statistics (AB, H, 2B, 3B, HR, BB, SO, R, RBI, SB, HBP, SF);
AVG, OBP, SLG and OPS are derived on display and export.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".dugout", "dugout.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config (default ~/.dugout/config.yaml if present)")

	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(lineupCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dropCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// loadConfig reads --config, falling back to ~/.dugout/config.yaml when it
// exists and to the built-in defaults otherwise.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		def := filepath.Join(mustUserHome(), ".dugout", "config.yaml")
		if _, err := os.Stat(def); err == nil {
			path = def
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// session bundles what every subcommand needs. Close releases the database.
type session struct {
	db  *storage.DB
	cfg *config.Config
	svc *dugout.Service
}

func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	svc, err := dugout.New(db, cfg, os.Stderr)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &session{db: db, cfg: cfg, svc: svc}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}
