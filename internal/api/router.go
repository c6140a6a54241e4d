package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/kestrel-analytics/transition-engine/internal/monitoring"
	"github.com/kestrel-analytics/transition-engine/internal/store"
	"github.com/kestrel-analytics/transition-engine/internal/types"
)

// Server exposes a read-only HTTP surface over persisted run output for
// human-review tooling and offline validation scripts.
type Server struct {
	repo    *store.Repository
	logger  *monitoring.Logger
	limiter *rate.Limiter
}

// NewServer creates the API server over a repository.
func NewServer(repo *store.Repository, logger *monitoring.Logger) *Server {
	return &Server{
		repo:    repo,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(50), 100),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.rateLimit())

	router.GET("/health", s.handleHealth)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/runs/latest", s.handleLatestRun)
		v1.GET("/runs/:id/summary", s.handleSummary)
		v1.GET("/runs/:id/detections", s.handleDetections)
		v1.GET("/runs/:id/evidence/:ref", s.handleEvidence)
	}
	return router
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleLatestRun(c *gin.Context) {
	runID, err := s.repo.LatestRunID()
	if err != nil {
		s.fail(c, err)
		return
	}
	if runID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no runs recorded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": runID})
}

func (s *Server) handleSummary(c *gin.Context) {
	summary, err := s.repo.GetSummary(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleDetections(c *gin.Context) {
	tier := types.Tier(c.Query("tier"))
	switch tier {
	case types.TierNone, types.TierHigh, types.TierLikely, types.TierPossible:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tier filter"})
		return
	}

	detections, err := s.repo.ListDetections(c.Param("id"), tier)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id":     c.Param("id"),
		"count":      len(detections),
		"detections": detections,
	})
}

func (s *Server) handleEvidence(c *gin.Context) {
	bundle, err := s.repo.GetEvidence(c.Param("id"), c.Param("ref"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if bundle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "evidence not found"})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("API Error", "error", err.Error(), "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
