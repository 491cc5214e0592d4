package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/youruser/talingchan-deck/internal/deck"
	"github.com/youruser/talingchan-deck/internal/export"
	"github.com/youruser/talingchan-deck/internal/session"
	"go.uber.org/zap"
)

// writeError maps domain errors to status codes. Every body carries the
// message and a stable kind.
func (s *Server) writeError(c *gin.Context, err error) {
	var v deck.Violation
	var ve export.ValidationError
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": v.Kind()})
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "validation"})
	case errors.Is(err, export.ErrExportFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "kind": "export_failed"})
	case errors.Is(err, session.ErrClosed):
		c.JSON(http.StatusGone, gin.H{"error": err.Error(), "kind": "session_closed"})
	default:
		s.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "kind": "internal"})
	}
}
