package user

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// User 代表可调用推荐接口的用户
type User struct {
	ID    string `json:"id" yaml:"id"`
	Token string `json:"-" yaml:"token"` // Token 用于鉴权，不序列化到 JSON
	Name  string `json:"name" yaml:"name"`
}

// Provider 定义了用户数据获取的接口
type Provider interface {
	GetUser(userID string) (*User, error)
	GetUserByToken(token string) (*User, error)
}

// StaticProvider 基于静态配置文件实现的用户提供者
type StaticProvider struct {
	users      map[string]*User
	tokenIndex map[string]*User
	mu         sync.RWMutex
}

type staticConfig struct {
	Users []User `yaml:"users"`
}

// NewStaticProvider 创建一个新的 StaticProvider 实例
// configPath 是用户配置文件的路径 (yaml格式)
func NewStaticProvider(configPath string) (*StaticProvider, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var config staticConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	userMap := make(map[string]*User)
	tokenIndex := make(map[string]*User)

	for i := range config.Users {
		u := &config.Users[i]
		userMap[u.ID] = u
		if u.Token != "" {
			tokenIndex[u.Token] = u
		}
	}

	return &StaticProvider{
		users:      userMap,
		tokenIndex: tokenIndex,
	}, nil
}

// GetUser 根据 UserID 获取用户信息
func (p *StaticProvider) GetUser(userID string) (*User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	u, ok := p.users[userID]
	if !ok {
		return nil, fmt.Errorf("user not found: %s", userID)
	}
	return u, nil
}

// GetUserByToken 根据 Token 获取用户信息
func (p *StaticProvider) GetUserByToken(token string) (*User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	u, ok := p.tokenIndex[token]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return u, nil
}
