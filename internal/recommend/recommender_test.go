package recommend

import (
	"errors"
	"testing"

	"task_recommender/internal/model"
	"task_recommender/internal/similarity"
	"task_recommender/internal/textclean"
)

func testTable() []model.Task {
	return []model.Task{
		{ID: 1, Title: "fix the server outage", Deadline: "2024-01-01"},
		{ID: 2, Title: "server outage repair needed", Deadline: "2024-01-02"},
		{ID: 3, Title: "plan holiday party", Deadline: "2024-01-03"},
	}
}

func buildSim(tasks []model.Task) [][]float64 {
	corpus := make([]string, len(tasks))
	for i, t := range tasks {
		corpus[i] = textclean.Clean(t.Title)
	}
	_, sim := similarity.Build(corpus)
	return sim
}

func TestTopNBounds(t *testing.T) {
	tasks := testTable()
	sim := buildSim(tasks)

	for _, topN := range []int{-3, 0, 1, 20, 100} {
		if _, err := TopN("fix the server outage", sim, tasks, topN); !errors.Is(err, ErrInvalidTopN) {
			t.Errorf("topN=%d: expected ErrInvalidTopN, got %v", topN, err)
		}
	}

	// 开区间内的所有值都应合法
	for topN := 2; topN <= 19; topN++ {
		result, err := TopN("fix the server outage", sim, tasks, topN)
		if err != nil {
			t.Errorf("topN=%d: unexpected error %v", topN, err)
			continue
		}
		if len(result) > topN {
			t.Errorf("topN=%d: got %d rows", topN, len(result))
		}
		for _, r := range result {
			if r.ID == 1 {
				t.Errorf("topN=%d: result contains the query item itself", topN)
			}
		}
	}
}

func TestTopNTitleNotFound(t *testing.T) {
	tasks := testTable()
	sim := buildSim(tasks)

	_, err := TopN("no such task", sim, tasks, 5)
	if !errors.Is(err, ErrTitleNotFound) {
		t.Errorf("expected ErrTitleNotFound, got %v", err)
	}
}

func TestTopNRanking(t *testing.T) {
	tasks := testTable()
	sim := buildSim(tasks)

	result, err := TopN("fix the server outage", sim, tasks, 2)
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result))
	}

	// 任务 2 与查询共享 server/outage，必须排在无关的任务 3 之前
	if result[0].ID != 2 {
		t.Errorf("expected task 2 ranked first, got %d", result[0].ID)
	}
	if result[1].ID != 3 {
		t.Errorf("expected task 3 ranked second, got %d", result[1].ID)
	}
	if result[0].Score <= result[1].Score {
		t.Errorf("scores not descending: %v then %v", result[0].Score, result[1].Score)
	}

	// 投影字段应从任务行透传
	if result[0].Title != "server outage repair needed" || result[0].Deadline != "2024-01-02" {
		t.Errorf("unexpected projection: %+v", result[0])
	}
}

func TestTopNFewerRowsThanRequested(t *testing.T) {
	tasks := testTable()
	sim := buildSim(tasks)

	result, err := TopN("fix the server outage", sim, tasks, 19)
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("expected 2 rows (table has 3 incl query), got %d", len(result))
	}
}

func TestBuildTitleIndexLastWins(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "same title"},
		{ID: 2, Title: "same title"},
	}
	idx := buildTitleIndex(tasks)
	if idx["same title"] != 1 {
		t.Errorf("duplicate titles: expected last row to win, got index %d", idx["same title"])
	}
}
