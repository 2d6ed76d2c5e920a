package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"task_recommender/internal/frame"
	"task_recommender/internal/history"
	"task_recommender/internal/job"
	"task_recommender/internal/logger"
	"task_recommender/internal/model"
	"task_recommender/internal/recommend"
	"task_recommender/internal/store"
	"task_recommender/internal/user"
)

// Server 代表 HTTP API 服务器
type Server struct {
	router       *gin.Engine
	userProvider user.Provider
	taskStore    *store.Store
	historyStore history.Store
	jobManager   *job.Manager
}

// NewServer 创建新的 HTTP 服务器
func NewServer(up user.Provider, ts *store.Store, hs history.Store) *Server {
	s := &Server{
		router:       gin.Default(),
		userProvider: up,
		taskStore:    ts,
		historyStore: hs,
		jobManager:   job.NewManager(),
	}
	s.router.Use(s.corsMiddleware())
	s.setupRoutes()
	return s
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")

	// 中间件：Token 鉴权
	v1.Use(s.authMiddleware())

	v1.POST("/recommend", s.handleRecommend)
	v1.POST("/recommend/async", s.handleRecommendAsync)
	v1.GET("/jobs/:id", s.handleGetJob)

	v1.GET("/tasks", s.handleListTasks)
	v1.POST("/tasks", s.handleAddTask)

	v1.GET("/history", s.handleGetHistory)
}

// authMiddleware 鉴权中间件
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		u, err := s.userProvider.GetUserByToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 将用户信息存入 Context
		c.Set("user", u)
		c.Next()
	}
}

type RecommendRequest struct {
	Title string `json:"title" binding:"required"`
	TopN  int    `json:"top_n" binding:"required"`
	New   bool   `json:"new"` // title 是否为不在表内的自由文本
}

// runRecommend 读取任务表并执行推荐流水线
func (s *Server) runRecommend(c *gin.Context, req RecommendRequest) ([]model.Recommendation, error) {
	tasks, err := s.taskStore.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return frame.Prepare(tasks, req.Title, req.TopN, req.New)
}

// statusForError 把流水线的错误类别映射到 HTTP 状态码
func statusForError(err error) int {
	switch {
	case errors.Is(err, recommend.ErrInvalidTopN):
		return http.StatusBadRequest
	case errors.Is(err, frame.ErrShortQuery):
		return http.StatusUnprocessableEntity
	case errors.Is(err, frame.ErrDuplicateQuery):
		return http.StatusConflict
	case errors.Is(err, recommend.ErrTitleNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// handleRecommend 同步推荐
// POST /api/v1/recommend
func (s *Server) handleRecommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	uVal, _ := c.Get("user")
	u := uVal.(*user.User)

	result, err := s.runRecommend(c, req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	// 异步保存历史
	go s.saveHistory(u.ID, req, result)

	c.JSON(http.StatusOK, gin.H{
		"query": req.Title,
		"items": result,
	})
}

// handleRecommendAsync 异步推荐：立即返回 job id，结果通过 /jobs/:id 查询
// POST /api/v1/recommend/async
func (s *Server) handleRecommendAsync(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	uVal, _ := c.Get("user")
	u := uVal.(*user.User)

	j := s.jobManager.NewJob()

	go func() {
		_ = s.jobManager.UpdateStatus(j.ID, job.StatusProcessing)

		// 请求的 context 在 handler 返回后即失效，后台任务用独立 context
		tasks, err := s.taskStore.List(context.Background())
		if err != nil {
			_ = s.jobManager.SetError(j.ID, err)
			return
		}

		result, err := frame.Prepare(tasks, req.Title, req.TopN, req.New)
		if err != nil {
			_ = s.jobManager.SetError(j.ID, err)
			return
		}

		_ = s.jobManager.SetResult(j.ID, result)
		s.saveHistory(u.ID, req, result)
	}()

	c.JSON(http.StatusAccepted, gin.H{"job_id": j.ID})
}

// handleGetJob 查询异步任务状态
// GET /api/v1/jobs/:id
func (s *Server) handleGetJob(c *gin.Context) {
	j, err := s.jobManager.GetJob(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, j)
}

// handleListTasks 返回任务表全部行
// GET /api/v1/tasks
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.taskStore.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type AddTaskRequest struct {
	ID       int64  `json:"id"`
	Title    string `json:"title" binding:"required"`
	Deadline string `json:"deadline"`
	Note     string `json:"note"`
}

// handleAddTask 向任务表插入一行
// POST /api/v1/tasks
func (s *Server) handleAddTask(c *gin.Context) {
	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	t, err := s.taskStore.Add(c.Request.Context(), model.Task{
		ID:       req.ID,
		Title:    req.Title,
		Deadline: req.Deadline,
		Note:     req.Note,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrInvalidTaskID) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": t})
}

// handleGetHistory 返回当前用户最近 N 天的查询历史
// GET /api/v1/history?days=7
func (s *Server) handleGetHistory(c *gin.Context) {
	uVal, _ := c.Get("user")
	u := uVal.(*user.User)

	days := 7
	if d, err := strconv.Atoi(c.DefaultQuery("days", "7")); err == nil && d > 0 {
		days = d
	}

	records, err := s.historyStore.GetRecent(u.ID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (s *Server) saveHistory(userID string, req RecommendRequest, result []model.Recommendation) {
	var titles []string
	for _, r := range result {
		titles = append(titles, r.Title)
	}
	if len(titles) == 0 {
		return
	}
	if err := s.historyStore.Save(userID, req.Title, req.New, titles); err != nil {
		logger.Error("Failed to save history async: %v", err)
	}
}
