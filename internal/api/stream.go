package api

import (
	"encoding/json"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// streamSession pushes the session view over a WebSocket after every change.
func (s *Server) streamSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	views, cancel, err := sess.Subscribe()
	if err != nil {
		s.writeError(c, err)
		return
	}
	defer cancel()

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.Log.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	// Clients only listen; CloseRead handles their close frame.
	ctx := conn.CloseRead(c.Request.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-views:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "session closed")
				return
			}
			msg, err := json.Marshal(v)
			if err != nil {
				s.Log.Error("marshal session view", zap.Error(err))
				return
			}
			if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
				s.Log.Debug("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}
