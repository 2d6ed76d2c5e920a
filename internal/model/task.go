package model

// SyntheticTaskID 是查询行的保留 ID，真实任务的 ID 必须为正数（由 store 层保证）
const SyntheticTaskID int64 = -1

// Task 代表任务表中的一行（如一个待办、一个工单）
type Task struct {
	ID        int64  `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`       // 用于相似度计算的文本列
	Deadline  string `json:"deadline" yaml:"deadline"` // 透传字段，流水线不解析
	Note      string `json:"note,omitempty" yaml:"note,omitempty"`
	Synthetic bool   `json:"synthetic,omitempty" yaml:"-"` // 查询行标记，不落库
}

// NewQueryTask 构造一条合成查询行
// 原始数据里用 ID=999 作哨兵值，这里改用显式标记 + 保留 ID，避免与真实数据冲突
func NewQueryTask(title string) Task {
	return Task{
		ID:        SyntheticTaskID,
		Title:     title,
		Deadline:  "0",
		Note:      "You want to?",
		Synthetic: true,
	}
}
