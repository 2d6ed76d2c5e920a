package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndGetRecent(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "history.jsonl")

	store, err := NewFileStore(filePath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := store.Save("u1", "fix the server outage", false, []string{"server outage repair needed"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err := store.GetRecent("u1", 7)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Query != "fix the server outage" || len(records[0].Titles) != 1 {
		t.Errorf("unexpected record: %+v", records[0])
	}

	// 其他用户查不到
	records, err = store.GetRecent("u2", 7)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records for u2, got %d", len(records))
	}

	// 重新加载后数据仍在
	store2, err := NewFileStore(filePath)
	if err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	records, _ = store2.GetRecent("u1", 7)
	if len(records) != 1 {
		t.Errorf("expected 1 record after reload, got %d", len(records))
	}
}

func TestCleanup(t *testing.T) {
	// 1. 创建临时文件
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "test_history.jsonl")

	// 2. 准备数据：包含过期和未过期的数据
	now := time.Now().Unix()
	records := []Record{
		{UserID: "u1", Query: "old query", Titles: []string{"a"}, Timestamp: now - 8*24*3600},          // 8 days ago (expired)
		{UserID: "u1", Query: "new query", Titles: []string{"b"}, Timestamp: now - 1*24*3600},          // 1 day ago (kept)
		{UserID: "u2", Query: "just expired", Titles: []string{"c"}, Timestamp: now - 7*24*3600 - 100}, // > 7 days (expired)
		{UserID: "u2", Query: "just kept", Titles: []string{"d"}, Timestamp: now - 7*24*3600 + 100},    // < 7 days (kept)
	}

	f, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	encoder := json.NewEncoder(f)
	for _, r := range records {
		if err := encoder.Encode(r); err != nil {
			t.Fatalf("failed to write record: %v", err)
		}
	}
	f.Close()

	// 3. 初始化 Store
	store, err := NewFileStore(filePath)
	if err != nil {
		t.Fatalf("failed to new file store: %v", err)
	}

	// 4. 执行清理 (保留 7 天)
	if err := store.Cleanup(7); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	// 5. 验证内存数据
	expectedCount := 2
	if len(store.records) != expectedCount {
		t.Errorf("expected %d records, got %d", expectedCount, len(store.records))
	}
	for _, r := range store.records {
		if r.Query == "old query" || r.Query == "just expired" {
			t.Errorf("found expired record: %s", r.Query)
		}
	}

	// 6. 验证文件持久化
	store2, err := NewFileStore(filePath)
	if err != nil {
		t.Fatalf("failed to reload file store: %v", err)
	}
	if len(store2.records) != expectedCount {
		t.Errorf("expected %d records after reload, got %d", expectedCount, len(store2.records))
	}
}
