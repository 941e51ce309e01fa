package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goqa/engine"
	"goqa/slog"
)

type askRequest struct {
	Query     string `json:"query" binding:"required"`
	Files     int    `json:"files" binding:"omitempty,min=1"`
	Sentences int    `json:"sentences" binding:"omitempty,min=1"`
}

type Server struct {
	engine          *engine.Engine
	fileMatches     int
	sentenceMatches int
}

// New serves questions against engine. The widths are used when a request
// does not set its own.
func New(engine *engine.Engine, fileMatches, sentenceMatches int) *Server {
	return &Server{engine: engine, fileMatches: fileMatches, sentenceMatches: sentenceMatches}
}

func (s *Server) handleAsk(context *gin.Context) {
	var req askRequest
	if err := context.ShouldBindJSON(&req); err != nil {
		context.JSON(http.StatusBadRequest, gin.H{"error": "Could not interpret the request. Please send the POST request with JSON body as { query: <YOUR QUESTION HERE>, files: <N>, sentences: <M> }"})
		return
	}
	if req.Files == 0 {
		req.Files = s.fileMatches
	}
	if req.Sentences == 0 {
		req.Sentences = s.sentenceMatches
	}
	answer, err := s.engine.Answer(req.Query, req.Files, req.Sentences)
	if err != nil {
		slog.Error("handleAsk: error occurred while answering the query: ", err)
		context.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error!"})
		return
	}
	context.JSON(http.StatusOK, answer)
}

func (s *Server) handleFiles(context *gin.Context) {
	context.JSON(http.StatusOK, gin.H{"files": s.engine.Files()})
}

func logRequests(context *gin.Context) {
	start := time.Now()
	context.Next()
	slog.Logger().Info("Got request",
		"method", context.Request.Method,
		"path", context.Request.URL.Path,
		"status", context.Writer.Status(),
		"elapsed", time.Since(start))
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), logRequests)
	router.POST("/api/ask", s.handleAsk)
	router.GET("/api/files", s.handleFiles)
	return router
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	slog.Infof("Listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}
