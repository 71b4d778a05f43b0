package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/hacknox/teamlens/internal/errors"
	"github.com/hacknox/teamlens/internal/impact"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleMembers returns the latest fused member list, ordered by merged
// score descending.
func (s *Server) handleMembers(c *gin.Context) {
	rows, err := s.repo.LatestFinal()
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": rows})
}

// handleRoles returns the event pipeline's per-actor role records from the
// latest run's artifact file.
func (s *Server) handleRoles(c *gin.Context) {
	data, err := os.ReadFile(filepath.Join(s.cfg.OutputDir, "actor_roles.json"))
	if err != nil {
		c.Error(apperrors.NewSourceError("actor_roles.json", err))
		return
	}
	var roles map[string]impact.RoleRecord
	if err := json.Unmarshal(data, &roles); err != nil {
		c.Error(apperrors.NewSourceError("actor_roles.json", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// handleExplanations returns the per-actor role rationales from the latest
// run's artifact file.
func (s *Server) handleExplanations(c *gin.Context) {
	data, err := os.ReadFile(filepath.Join(s.cfg.OutputDir, "explainability.json"))
	if err != nil {
		c.Error(apperrors.NewSourceError("explainability.json", err))
		return
	}
	var explanations map[string]impact.Explanation
	if err := json.Unmarshal(data, &explanations); err != nil {
		c.Error(apperrors.NewSourceError("explainability.json", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"explanations": explanations})
}

// handleGit returns the latest git intelligence, ordered by git score
// descending.
func (s *Server) handleGit(c *gin.Context) {
	rows, err := s.repo.LatestGit()
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": rows})
}

// handleMeeting returns the latest meeting intelligence, ordered by
// involvement descending.
func (s *Server) handleMeeting(c *gin.Context) {
	rows, err := s.repo.LatestMeeting()
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": rows})
}

// handleRun triggers one pipeline pass synchronously and reports the new
// version.
func (s *Server) handleRun(c *gin.Context) {
	result, err := s.runner.Run(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"version": result.Version,
		"events":  result.Events,
		"actors":  result.Actors,
	})
}
