package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/export"
	imagepkg "github.com/youruser/talingchan-deck/internal/image"
	"github.com/youruser/talingchan-deck/internal/session"
	"go.uber.org/zap"
)

// Server carries the shared state behind the handlers.
type Server struct {
	Catalog    *cards.Catalog
	Sessions   *session.Store
	Tournament *export.TournamentClient
	Images     *export.ImageRenderer
	Log        *zap.Logger
}

// NewServer wires the handlers. A nil logger is replaced with a no-op one.
func NewServer(catalog *cards.Catalog, sessions *session.Store, tournament *export.TournamentClient, images *export.ImageRenderer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Catalog:    catalog,
		Sessions:   sessions,
		Tournament: tournament,
		Images:     images,
		Log:        log,
	}
}

// health
func (s *Server) health(c *gin.Context) {
	cs, loading := s.Catalog.Cards()
	resp := gin.H{
		"status":   "ok",
		"loading":  loading,
		"cards":    len(cs),
		"sessions": s.Sessions.Len(),
	}
	if err := s.Catalog.Err(); err != nil {
		resp["catalogError"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) catalogHandler(c *gin.Context) {
	cs, loading := s.Catalog.Cards()
	if cs == nil {
		cs = []cards.Card{}
	}
	c.JSON(http.StatusOK, gin.H{"loading": loading, "count": len(cs), "cards": cs})
}

func (s *Server) filtersHandler(c *gin.Context) {
	_, loading := s.Catalog.Cards()
	c.JSON(http.StatusOK, gin.H{"loading": loading, "filters": s.Catalog.Index()})
}

// searchHandler applies a posted query and selection to the catalog.
func (s *Server) searchHandler(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filters := cards.Selection{}
	for name, values := range opt.Filters {
		cat, ok := cards.ParseCategory(string(name))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown filter category " + strconv.Quote(string(name))})
			return
		}
		filters[cat] = append(filters[cat], values...)
	}
	opt.Filters = filters
	out := s.Catalog.Search(opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 2048 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
