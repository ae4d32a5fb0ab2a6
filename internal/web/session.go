package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhanushperumalla/ai-post-generator/internal/models"
	"github.com/dhanushperumalla/ai-post-generator/internal/storage"
)

const (
	sessionCookie     = "session_id"
	sessionContextKey = "session"
)

// Session is the per-browser application context. Preferences are loaded
// once per request and written back only by the preference handlers.
type Session struct {
	ID    string
	Posts *storage.PostStore
	Prefs models.Preferences
}

func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || !validSessionID(id) {
			id = uuid.NewString()
			s.setSessionCookie(c, id, int(s.sessionTTL.Seconds()))
			s.logger.Debug("🆕 New session", zap.String("session", id))
		}

		sess := s.openSession(c, id)
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

func (s *Server) openSession(c *gin.Context, id string) *Session {
	posts := storage.NewPostStore(
		storage.Scoped(s.store, "session:"+id),
		s.logger.With(zap.String("session", id)),
	)
	return &Session{
		ID:    id,
		Posts: posts,
		Prefs: posts.Preferences(c.Request.Context()),
	}
}

func (s *Server) setSessionCookie(c *gin.Context, id string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, maxAge, "/", "", s.secureCookies, true)
}

func sessionFrom(c *gin.Context) *Session {
	return c.MustGet(sessionContextKey).(*Session)
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
