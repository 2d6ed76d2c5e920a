package recommend

import (
	"errors"
	"fmt"
	"sort"

	"task_recommender/internal/model"
)

var (
	// ErrInvalidTopN 表示 topN 超出 (1, 20) 开区间
	ErrInvalidTopN = errors.New("wrong value for top_n, enter a valid value")
	// ErrTitleNotFound 表示标题在任务表的文本列里不存在
	ErrTitleNotFound = errors.New("title not found in task table")
)

// TopN 基于余弦相似度矩阵返回与 title 最相似的至多 topN 个任务
// sim 的行序必须与 tasks 的行序一致（按切片下标 0 起对齐，不信任任务自带的 ID）
// 结果按相似度降序排列，且永远不包含查询行自身
func TopN(title string, sim [][]float64, tasks []model.Task, topN int) ([]model.Recommendation, error) {
	if topN <= 1 || topN >= 20 {
		return nil, fmt.Errorf("%w: got %d, want 1 < top_n < 20", ErrInvalidTopN, topN)
	}

	idx, ok := buildTitleIndex(tasks)[title]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTitleNotFound, title)
	}

	type scored struct {
		row   int
		score float64
	}
	scores := make([]scored, 0, len(tasks))
	for row, score := range sim[idx] {
		// 按行身份排除查询行，而不是假定它总排在第 0 位——
		// 零向量的查询行自相似度为 0，不一定排最前
		if row == idx {
			continue
		}
		scores = append(scores, scored{row: row, score: score})
	}

	// 稳定排序，同分项保持原行序
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if len(scores) > topN {
		scores = scores[:topN]
	}

	result := make([]model.Recommendation, 0, len(scores))
	for _, s := range scores {
		t := tasks[s.row]
		result = append(result, model.Recommendation{
			ID:       t.ID,
			Title:    t.Title,
			Deadline: t.Deadline,
			Score:    s.score,
		})
	}
	return result, nil
}

// buildTitleIndex 建立文本列取值到行下标的映射
// 标题重复时后面的行覆盖前面的行（与原始数据的构建顺序一致），属实现定义行为
func buildTitleIndex(tasks []model.Task) map[string]int {
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		index[t.Title] = i
	}
	return index
}
