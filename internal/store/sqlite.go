package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"gopkg.in/yaml.v3"

	"task_recommender/internal/model"
)

// ErrInvalidTaskID 表示写入了非正数 ID 的任务（负数区间保留给合成查询行）
var ErrInvalidTaskID = errors.New("task id must be positive")

// Store 基于 SQLite 的任务表存储
type Store struct {
	db   *sql.DB
	path string
}

// Open 打开（或创建）任务库并建表
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close 关闭底层数据库连接
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS tasks (
            id       INTEGER PRIMARY KEY CHECK (id > 0),
            title    TEXT NOT NULL,
            deadline TEXT NOT NULL DEFAULT '',
            note     TEXT NOT NULL DEFAULT ''
        )`)
	if err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

// List 按 ID 升序返回全部任务行
func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, deadline, note FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Deadline, &t.Note); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return tasks, nil
}

// Add 插入一条任务，ID 为 0 时自动分配
func (s *Store) Add(ctx context.Context, t model.Task) (model.Task, error) {
	if t.ID < 0 || t.Synthetic {
		return model.Task{}, fmt.Errorf("%w: got %d", ErrInvalidTaskID, t.ID)
	}

	var (
		res sql.Result
		err error
	)
	if t.ID == 0 {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO tasks (title, deadline, note) VALUES (?, ?, ?)`,
			t.Title, t.Deadline, t.Note)
	} else {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO tasks (id, title, deadline, note) VALUES (?, ?, ?, ?)`,
			t.ID, t.Title, t.Deadline, t.Note)
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	if t.ID == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return model.Task{}, fmt.Errorf("resolve task id: %w", err)
		}
		t.ID = id
	}
	return t, nil
}

type seedFile struct {
	Tasks []model.Task `yaml:"tasks"`
}

// Seed 从 yaml 文件批量导入任务（格式见 configs/tasks.yaml）
// 返回成功导入的行数
func (s *Store) Seed(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	count := 0
	for _, t := range seed.Tasks {
		if _, err := s.Add(ctx, t); err != nil {
			return count, fmt.Errorf("seed task %q: %w", t.Title, err)
		}
		count++
	}
	return count, nil
}
