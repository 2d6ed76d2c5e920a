package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"task_recommender/internal/logger"
)

// Config 对应 configs/server.yaml
type Config struct {
	Server struct {
		Port  string `yaml:"port"`
		Debug bool   `yaml:"debug"`
	} `yaml:"server"`
	Paths struct {
		Users   string `yaml:"users"`
		DB      string `yaml:"db"`
		History string `yaml:"history"`
	} `yaml:"paths"`
	History struct {
		RetentionDays int `yaml:"retention_days"` // 启动时清理超过 N 天的查询历史
	} `yaml:"history"`
}

func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveConfig 初始化配置，优先级：命令行参数 > 配置文件 > 默认值
func resolveConfig() *Config {
	// 1. 默认值
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Server.Debug = false
	cfg.Paths.Users = "configs/users.yaml"
	cfg.Paths.DB = "data/tasks.db"
	cfg.Paths.History = "data/history.jsonl"
	cfg.History.RetentionDays = 30

	// 2. 尝试加载配置文件，默认文件不存在不算错误
	if loaded, err := loadConfigFile(flagConfigPath); err == nil {
		if loaded.Server.Port != "" {
			cfg.Server.Port = loaded.Server.Port
		}
		if loaded.Server.Debug {
			cfg.Server.Debug = true
		}
		if loaded.Paths.Users != "" {
			cfg.Paths.Users = loaded.Paths.Users
		}
		if loaded.Paths.DB != "" {
			cfg.Paths.DB = loaded.Paths.DB
		}
		if loaded.Paths.History != "" {
			cfg.Paths.History = loaded.Paths.History
		}
		if loaded.History.RetentionDays > 0 {
			cfg.History.RetentionDays = loaded.History.RetentionDays
		}
	} else {
		logger.Info("Could not load config file '%s': %v. Using defaults or flags.", flagConfigPath, err)
	}

	// 3. 应用命令行参数 (优先级最高)
	if flagPort != "" {
		cfg.Server.Port = flagPort
	}
	if flagDebug {
		cfg.Server.Debug = true
	}
	if flagDBPath != "" {
		cfg.Paths.DB = flagDBPath
	}
	if flagUsersPath != "" {
		cfg.Paths.Users = flagUsersPath
	}
	if flagHistoryPath != "" {
		cfg.Paths.History = flagHistoryPath
	}

	return cfg
}
