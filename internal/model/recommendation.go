package model

// Recommendation 是推荐结果中的一行：任务的投影列 + 相似度分数
// 行序即相似度降序
type Recommendation struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Deadline string  `json:"deadline"`
	Score    float64 `json:"score"` // 与查询行的余弦相似度
}
