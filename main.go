package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/chronoflow/internal/account"
	"github.com/sadopc/chronoflow/internal/backup"
	"github.com/sadopc/chronoflow/internal/config"
	"github.com/sadopc/chronoflow/internal/insight"
	"github.com/sadopc/chronoflow/internal/storage"
	"github.com/sadopc/chronoflow/internal/track"
	"github.com/sadopc/chronoflow/internal/tui"
	"github.com/sadopc/chronoflow/internal/view"
)

const version = "0.1.0"

var dbPath string

var rootCmd = &cobra.Command{
	Use:     "chronoflow",
	Short:   "A terminal time tracker with thoughts, comparisons and AI insights",
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		settings, err := view.LoadSettings(st)
		if err != nil {
			return err
		}

		app := tui.NewApp(
			store,
			st,
			account.NewManager(st),
			insight.New(cfg.Insight.APIKey, cfg.Insight.Model),
			settings,
		)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write a JSON backup of all categories and activities",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path = filepath.Join(home, backup.DefaultFilename(time.Now()))
		}

		if err := backup.Export(store.Categories(), store.Activities(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Restore categories and activities from a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		result, err := backup.ImportFile(args[0], store)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
		return nil
	},
}

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Print an AI insight over the last 7 days of activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 45*time.Second)
		defer cancel()

		gen := insight.New(cfg.Insight.APIKey, cfg.Insight.Model)
		fmt.Fprintln(cmd.OutOrStdout(), gen.Generate(ctx, store.Activities(), store.Categories()))
		return nil
	},
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	}
	return cfg, nil
}

func openStore(cfg config.Config) (storage.Storage, *track.Store, error) {
	st, err := storage.Open(cfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	store := track.NewStore(st)
	if err := store.Load(); err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, store, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (defaults to ~/.config/chronoflow/chronoflow.db)")
	rootCmd.AddCommand(exportCmd, importCmd, insightCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
