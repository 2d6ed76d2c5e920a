package main

import (
	"os"

	"github.com/spf13/cobra"

	"task_recommender/internal/logger"
)

var (
	flagConfigPath  string
	flagPort        string
	flagDebug       bool
	flagDBPath      string
	flagUsersPath   string
	flagHistoryPath string
)

var rootCmd = &cobra.Command{
	Use:   "recommender",
	Short: "TF-IDF based similar-task recommender",
	Long: `recommender 基于 TF-IDF 与余弦相似度，为任务表中的条目
（或新输入的自由文本）返回最相似的 top-N 任务。`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetDebug(flagDebug)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "configs/server.yaml", "Path to server config file")
	rootCmd.PersistentFlags().StringVar(&flagPort, "port", "", "Server port")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to tasks sqlite database")
	rootCmd.PersistentFlags().StringVar(&flagUsersPath, "users", "", "Path to users.yaml")
	rootCmd.PersistentFlags().StringVar(&flagHistoryPath, "history", "", "Path to history.jsonl")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
