package similarity

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestBuildSymmetric(t *testing.T) {
	corpus := []string{
		"fix server outage",
		"server outage repair needed",
		"plan holiday party",
	}
	_, sim := Build(corpus)

	for i := range sim {
		for j := range sim {
			if math.Abs(sim[i][j]-sim[j][i]) > tolerance {
				t.Errorf("sim[%d][%d] = %v, sim[%d][%d] = %v: not symmetric", i, j, sim[i][j], j, i, sim[j][i])
			}
		}
	}
}

func TestBuildSelfSimilarityMaximal(t *testing.T) {
	corpus := []string{
		"fix server outage",
		"server outage repair needed",
		"plan holiday party",
	}
	_, sim := Build(corpus)

	for i := range sim {
		if math.Abs(sim[i][i]-1) > tolerance {
			t.Errorf("sim[%d][%d] = %v, want 1 for non-degenerate row", i, i, sim[i][i])
		}
		for j := range sim {
			if sim[i][j] > sim[i][i]+tolerance {
				t.Errorf("sim[%d][%d] = %v exceeds self-similarity %v", i, j, sim[i][j], sim[i][i])
			}
		}
	}
}

func TestBuildRelatedDocsScoreHigher(t *testing.T) {
	corpus := []string{
		"fix server outage",
		"server outage repair needed",
		"plan holiday party",
	}
	_, sim := Build(corpus)

	if sim[0][1] <= sim[0][2] {
		t.Errorf("expected sim(0,1)=%v > sim(0,2)=%v", sim[0][1], sim[0][2])
	}
	if sim[0][2] != 0 {
		t.Errorf("expected zero similarity for disjoint vocabularies, got %v", sim[0][2])
	}
}

func TestBuildZeroVectorRow(t *testing.T) {
	// 第二篇文档清洗后没有 token，必须得到零向量而不是 panic
	corpus := []string{
		"fix server outage",
		"",
		"server repair",
	}
	vectors, sim := Build(corpus)

	if len(vectors[1]) != 0 {
		t.Errorf("expected empty vector for empty document, got %v", vectors[1])
	}
	for j := range sim {
		if sim[1][j] != 0 {
			t.Errorf("sim[1][%d] = %v, want 0 for zero-vector row", j, sim[1][j])
		}
	}
	if sim[1][1] != 0 {
		t.Errorf("self-similarity of a zero-vector row should be 0, got %v", sim[1][1])
	}
}

func TestBuildIdenticalDocs(t *testing.T) {
	_, sim := Build([]string{"server outage", "server outage"})
	if math.Abs(sim[0][1]-1) > tolerance {
		t.Errorf("identical documents should have similarity 1, got %v", sim[0][1])
	}
}

func TestBuildVectorizerDropsStopwordsAndShortTokens(t *testing.T) {
	// 清洗阶段遗留的停用词和单字符 token 不应进入词表
	vectors, _ := Build([]string{"the server a x outage"})
	for term := range vectors[0] {
		if term == "the" || term == "a" || term == "x" {
			t.Errorf("term %q should not appear in the vocabulary", term)
		}
	}
	if len(vectors[0]) != 2 {
		t.Errorf("expected 2 terms (server, outage), got %d: %v", len(vectors[0]), vectors[0])
	}
}
