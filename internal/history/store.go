package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Record 代表一次推荐查询及其返回结果
type Record struct {
	UserID    string   `json:"user_id"`
	Query     string   `json:"query"`
	NewQuery  bool     `json:"new_query"` // 查询是否为新插入的自由文本
	Titles    []string `json:"titles"`    // 返回的任务标题，按相似度降序
	Timestamp int64    `json:"timestamp"`
}

// Store 定义查询历史存储接口
type Store interface {
	// GetRecent 获取用户最近 N 天的查询历史
	GetRecent(userID string, days int) ([]Record, error)
	// Save 保存一次查询历史
	Save(userID, query string, newQuery bool, titles []string) error
	// Cleanup 删除 N 天前的历史记录
	Cleanup(days int) error
}

// FileStore 基于 jsonl 文件的历史存储实现
type FileStore struct {
	filePath string
	mu       sync.RWMutex
	records  []Record // 内存缓存，用于快速查询
}

// NewFileStore 创建一个新的 FileStore
// 如果文件不存在，会自动创建
func NewFileStore(filePath string) (*FileStore, error) {
	fs := &FileStore{
		filePath: filePath,
		records:  make([]Record, 0),
	}

	if err := fs.load(); err != nil {
		return nil, err
	}

	return fs, nil
}

// load 从文件加载所有历史记录到内存
func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			// 忽略损坏的行
			continue
		}
		s.records = append(s.records, record)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan history file: %w", err)
	}

	return nil
}

// GetRecent 获取用户最近 N 天的查询历史
func (s *FileStore) GetRecent(userID string, days int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().Unix() - int64(days*24*60*60)

	var result []Record
	// 全量扫描对当前规模足够，数据量大了再加 map[userID][]Record 索引
	for _, r := range s.records {
		if r.UserID == userID && r.Timestamp >= cutoff {
			result = append(result, r)
		}
	}

	return result, nil
}

// Save 保存一次查询历史到文件和内存
func (s *FileStore) Save(userID, query string, newQuery bool, titles []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file for appending: %w", err)
	}
	defer f.Close()

	record := Record{
		UserID:    userID,
		Query:     query,
		NewQuery:  newQuery,
		Titles:    titles,
		Timestamp: time.Now().Unix(),
	}

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write history record: %w", err)
	}

	s.records = append(s.records, record)
	return nil
}

// Cleanup 删除 N 天前的历史记录，并把存活记录重写回文件
func (s *FileStore) Cleanup(days int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Unix() - int64(days*24*60*60)

	kept := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if r.Timestamp >= cutoff {
			kept = append(kept, r)
		}
	}

	// 先写临时文件再原子替换，避免中途失败丢数据
	tmpPath := s.filePath + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}

	encoder := json.NewEncoder(f)
	for _, r := range kept {
		if err := encoder.Encode(r); err != nil {
			f.Close()
			return fmt.Errorf("failed to rewrite history record: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp history file: %w", err)
	}

	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	s.records = kept
	return nil
}
