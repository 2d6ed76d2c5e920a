package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"task_recommender/internal/logger"
	"task_recommender/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <tasks.yaml>",
	Short: "Seed the task table from a yaml file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig()

		if err := os.MkdirAll(filepath.Dir(cfg.Paths.DB), 0755); err != nil {
			return fmt.Errorf("create db directory: %w", err)
		}
		taskStore, err := store.Open(cfg.Paths.DB)
		if err != nil {
			return fmt.Errorf("open task store: %w", err)
		}
		defer taskStore.Close()

		count, err := taskStore.Seed(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		logger.Info("Imported %d tasks from %s", count, args[0])
		return nil
	},
}
