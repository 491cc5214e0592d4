package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/session"
)

type cardRequest struct {
	RuleName string `json:"ruleName" binding:"required"`
}

type namesRequest struct {
	DeckName   string `json:"deckName"`
	PlayerName string `json:"playerName"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type filterRequest struct {
	Category string `json:"category" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

type clearRequest struct {
	Confirm bool `json:"confirm"`
}

// session resolves :id or writes a 404.
func (s *Server) session(c *gin.Context) (*session.Session, bool) {
	sess, ok := s.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return sess, true
}

func (s *Server) writeView(c *gin.Context, status int, sess *session.Session) {
	v, err := sess.View()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(status, v)
}

func (s *Server) createSession(c *gin.Context) {
	s.writeView(c, http.StatusCreated, s.Sessions.Create())
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	s.writeView(c, http.StatusOK, sess)
}

func (s *Server) deleteSession(c *gin.Context) {
	if !s.Sessions.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) setNames(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req namesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := sess.SetNames(req.DeckName, req.PlayerName); err != nil {
		s.writeError(c, err)
		return
	}
	s.writeView(c, http.StatusOK, sess)
}

func (s *Server) setQuery(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := sess.SetQuery(req.Query); err != nil {
		s.writeError(c, err)
		return
	}
	s.writeView(c, http.StatusOK, sess)
}

func (s *Server) toggleFilter(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, ok := cards.ParseCategory(req.Category)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown filter category " + req.Category})
		return
	}
	if err := sess.ToggleFilter(cat, req.Value); err != nil {
		s.writeError(c, err)
		return
	}
	s.writeView(c, http.StatusOK, sess)
}

// sessionCards is the gallery: the catalog narrowed by the session's query
// and filters.
func (s *Server) sessionCards(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	opt, err := sess.FilterOptions()
	if err != nil {
		s.writeError(c, err)
		return
	}
	_, loading := s.Catalog.Cards()
	out := s.Catalog.Search(opt)
	c.JSON(http.StatusOK, gin.H{"loading": loading, "count": len(out), "cards": out})
}

// withCard resolves the posted RuleName against the catalog and applies op.
func (s *Server) withCard(c *gin.Context, op func(*session.Session, cards.Card) error) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	card, ok := s.Catalog.Lookup(req.RuleName)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found: " + req.RuleName})
		return
	}
	if err := op(sess, card); err != nil {
		s.writeError(c, err)
		return
	}
	s.writeView(c, http.StatusOK, sess)
}

func (s *Server) addToMain(c *gin.Context) {
	s.withCard(c, (*session.Session).AddToMain)
}

func (s *Server) addToLife(c *gin.Context) {
	s.withCard(c, (*session.Session).AddToLife)
}

func (s *Server) pick(c *gin.Context) {
	s.withCard(c, (*session.Session).Pick)
}

func (s *Server) removeFromMain(c *gin.Context) {
	s.remove(c, (*session.Session).RemoveFromMain)
}

func (s *Server) removeFromLife(c *gin.Context) {
	s.remove(c, (*session.Session).RemoveFromLife)
}

// remove is a no-op when the card is absent; the view is returned either way.
func (s *Server) remove(c *gin.Context, op func(*session.Session, string) (bool, error)) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	if _, err := op(sess, c.Param("ruleName")); err != nil {
		s.writeError(c, err)
		return
	}
	s.writeView(c, http.StatusOK, sess)
}

// clearAll only empties the decks when the body confirms it.
func (s *Server) clearAll(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cleared, err := sess.ClearAll(func() bool { return req.Confirm })
	if err != nil {
		s.writeError(c, err)
		return
	}
	v, err := sess.View()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": cleared, "session": v})
}

// deckList returns the deck as a YAML list usable by the CLI.
func (s *Server) deckList(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	lf, err := sess.List()
	if err != nil {
		s.writeError(c, err)
		return
	}
	data, err := lf.Marshal()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/yaml", data)
}
