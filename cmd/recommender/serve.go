package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"task_recommender/internal/history"
	"task_recommender/internal/logger"
	"task_recommender/internal/server"
	"task_recommender/internal/store"
	"task_recommender/internal/user"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recommendation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig()

		// 1. 初始化 User Provider
		userProvider, err := user.NewStaticProvider(cfg.Paths.Users)
		if err != nil {
			logger.Fatal("Failed to init user provider: %v", err)
		}

		// 2. 打开任务库
		if err := os.MkdirAll(filepath.Dir(cfg.Paths.DB), 0755); err != nil {
			logger.Fatal("Failed to create db directory: %v", err)
		}
		taskStore, err := store.Open(cfg.Paths.DB)
		if err != nil {
			logger.Fatal("Failed to open task store: %v", err)
		}
		defer taskStore.Close()

		// 3. 初始化 History Store
		if err := os.MkdirAll(filepath.Dir(cfg.Paths.History), 0755); err != nil {
			logger.Fatal("Failed to create history directory: %v", err)
		}
		historyStore, err := history.NewFileStore(cfg.Paths.History)
		if err != nil {
			logger.Fatal("Failed to init history store: %v", err)
		}

		// 启动时做一次保留期清理，清理失败不阻断启动
		if err := historyStore.Cleanup(cfg.History.RetentionDays); err != nil {
			logger.Error("Failed to clean up history: %v", err)
		}

		// 4. 启动 HTTP Server
		srv := server.NewServer(userProvider, taskStore, historyStore)
		logger.Info("Starting HTTP server on port %s...", cfg.Server.Port)
		return srv.Run(":" + cfg.Server.Port)
	},
}
