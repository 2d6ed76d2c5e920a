package similarity

import (
	"math"
	"strings"
	"time"

	"task_recommender/internal/logger"
	"task_recommender/internal/textclean"
)

// Vector 是一行文档的稀疏 TF-IDF 向量，key 为词项
// 经过 L2 归一化，因此两个向量的点积即余弦相似度
type Vector map[string]float64

// Build 对语料拟合 TF-IDF 并计算全量两两余弦相似度
// 入参是已清洗的文档序列（顺序即行序），返回 TF-IDF 矩阵和 N×N 相似度矩阵
//
// 向量化阶段会再次剔除停用词——语料在进入这里之前已经清洗过一遍，
// 两道停用词过滤是冗余的，但与上游清洗相互独立，保持各自的契约
//
// 清洗后没有任何 token 的文档会得到零向量，它与所有行（包括自身）的
// 相似度为 0，调用方需要容忍这种退化行而不是报错
func Build(corpus []string) ([]Vector, [][]float64) {
	defer logger.Elapsed("cosine calculations", time.Now())

	docs := make([][]string, len(corpus))
	for i, text := range corpus {
		docs[i] = vectorizerTokens(text)
	}

	// 文档频率：每个词在一篇文档里只计一次
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range doc {
			if !seen[term] {
				df[term]++
				seen[term] = true
			}
		}
	}

	// 平滑 IDF：ln((1+N)/(1+df)) + 1，保证任何词权重非零
	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		vectors[i] = vectorize(doc, idf)
	}

	sim := make([][]float64, len(vectors))
	for i := range vectors {
		sim[i] = make([]float64, len(vectors))
	}
	for i := 0; i < len(vectors); i++ {
		for j := i; j < len(vectors); j++ {
			score := dot(vectors[i], vectors[j])
			sim[i][j] = score
			sim[j][i] = score
		}
	}

	return vectors, sim
}

// vectorizerTokens 是向量化器自己的分词：按空白切分，丢弃停用词和单字符 token
func vectorizerTokens(text string) []string {
	var tokens []string
	for _, token := range strings.Fields(text) {
		if len(token) < 2 || textclean.IsStopWord(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// vectorize 计算单篇文档的 L2 归一化 TF-IDF 向量
// 零 token 文档返回空向量（即零向量）
func vectorize(doc []string, idf map[string]float64) Vector {
	vec := make(Vector)
	for _, term := range doc {
		vec[term]++
	}
	var norm float64
	for term, tf := range vec {
		w := tf * idf[term]
		vec[term] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

// dot 计算两个稀疏向量的点积，遍历较小的一方
func dot(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for term, w := range a {
		sum += w * b[term]
	}
	return sum
}
