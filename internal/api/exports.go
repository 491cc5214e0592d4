package api

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/youruser/talingchan-deck/internal/export"
	"go.uber.org/zap"
)

// snapshot captures the session deck for an export. Later edits do not
// affect the running export.
func (s *Server) snapshot(c *gin.Context) (export.Snapshot, bool) {
	sess, ok := s.session(c)
	if !ok {
		return export.Snapshot{}, false
	}
	snap, err := sess.Snapshot()
	if err != nil {
		s.writeError(c, err)
		return export.Snapshot{}, false
	}
	return snap, true
}

func writeArtifact(c *gin.Context, a *export.Artifact) {
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(a.FileName))
	c.Data(http.StatusOK, a.ContentType, a.Data)
}

func (s *Server) exportText(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	writeArtifact(c, export.TextArtifact(snap))
}

func (s *Server) exportImage(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	a, err := s.Images.Render(c.Request.Context(), snap)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.Log.Info("deck image exported", zap.String("file", a.FileName), zap.Int("bytes", len(a.Data)))
	writeArtifact(c, a)
}

func (s *Server) exportTournament(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	a, err := s.Tournament.Generate(c.Request.Context(), snap)
	if err != nil {
		s.writeError(c, err)
		return
	}
	writeArtifact(c, a)
}
