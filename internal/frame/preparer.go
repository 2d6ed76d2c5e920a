package frame

import (
	"errors"
	"fmt"

	"task_recommender/internal/logger"
	"task_recommender/internal/model"
	"task_recommender/internal/recommend"
	"task_recommender/internal/similarity"
	"task_recommender/internal/textclean"
)

var (
	// ErrShortQuery 表示新查询清洗后不足 2 个 token，无法有意义地向量化
	ErrShortQuery = errors.New("query text too short after cleaning")
	// ErrDuplicateQuery 表示新查询清洗后与已有行完全相同
	ErrDuplicateQuery = errors.New("query duplicates an existing task")
)

// Prepare 执行完整的推荐流水线：
//  1. newQuery 为 true 时清洗 title 并追加合成查询行（不足 2 个 token 则报错）
//  2. 对全表文本列逐行清洗
//  3. 查重：新查询的清洗形式与任何既有行相同则报错
//  4. 建相似度矩阵并取 TopN
//
// 入参 tasks 不会被修改：追加查询行前先复制一份工作表，
// 同一张表可以安全地重复发起调用
func Prepare(tasks []model.Task, title string, topN int, newQuery bool) ([]model.Recommendation, error) {
	working := tasks

	cleanedTitle := ""
	if newQuery {
		cleanedTitle = textclean.Clean(title)
		if len(textclean.Tokens(title)) < 2 {
			return nil, fmt.Errorf("%w: please use different and more words than %q", ErrShortQuery, title)
		}

		working = make([]model.Task, 0, len(tasks)+1)
		working = append(working, tasks...)
		working = append(working, model.NewQueryTask(title))
		logger.Debug("appended synthetic query row for %q", title)
	}

	cleaned := make([]string, len(working))
	for i, t := range working {
		cleaned[i] = textclean.Clean(t.Title)
	}

	// 查重只和既有行比，跳过刚追加的查询行自身
	if newQuery {
		for i := 0; i < len(cleaned)-1; i++ {
			if cleaned[i] == cleanedTitle {
				return nil, fmt.Errorf("%w: inserted %q", ErrDuplicateQuery, title)
			}
		}
	}

	logger.Debug("building similarity over %d rows", len(working))
	_, sim := similarity.Build(cleaned)

	return recommend.TopN(title, sim, working, topN)
}
