package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the deck builder API on r.
func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/qr", qrHandler)

		api.GET("/catalog", s.catalogHandler)
		api.GET("/catalog/filters", s.filtersHandler)
		api.POST("/catalog/search", s.searchHandler)

		api.POST("/sessions", s.createSession)
		sess := api.Group("/sessions/:id")
		{
			sess.GET("", s.getSession)
			sess.DELETE("", s.deleteSession)
			sess.GET("/ws", s.streamSession)

			sess.PUT("/names", s.setNames)
			sess.PUT("/query", s.setQuery)
			sess.POST("/filters", s.toggleFilter)
			sess.GET("/cards", s.sessionCards)

			sess.POST("/main", s.addToMain)
			sess.POST("/life", s.addToLife)
			sess.POST("/pick", s.pick)
			sess.DELETE("/main/:ruleName", s.removeFromMain)
			sess.DELETE("/life/:ruleName", s.removeFromLife)
			sess.POST("/clear", s.clearAll)

			sess.GET("/list", s.deckList)
			sess.GET("/export/text", s.exportText)
			sess.GET("/export/image", s.exportImage)
			sess.GET("/export/tournament", s.exportTournament)
		}
	}
}
