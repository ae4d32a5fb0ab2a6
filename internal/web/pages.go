package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dhanushperumalla/ai-post-generator/internal/agents"
	"github.com/dhanushperumalla/ai-post-generator/internal/generation"
	"github.com/dhanushperumalla/ai-post-generator/internal/models"
	"github.com/dhanushperumalla/ai-post-generator/internal/storage"
)

type pageData struct {
	Title     string
	Active    string
	Prefs     models.Preferences
	Error     string
	Notice    string
	Busy      bool
	Platforms []models.Option
	Tones     []models.Option
	Form      models.GenerationRequest
	Fields    []models.ContentField
	Image     string
	Saved     []savedView
	CanShare  bool
}

type savedView struct {
	Index   int
	Post    models.SavedPost
	Editing bool
}

func (s *Server) newPage(c *gin.Context, title, active string) pageData {
	sess := sessionFrom(c)
	return pageData{
		Title:     title,
		Active:    active,
		Prefs:     sess.Prefs,
		Notice:    c.Query("notice"),
		Busy:      s.guard.Busy(sess.ID),
		Platforms: models.Platforms,
		Tones:     models.Tones,
	}
}

func (s *Server) renderGenerate(c *gin.Context, status int, data pageData) {
	if content := sessionFrom(c).Posts.LastGenerated(c.Request.Context()); content != nil {
		data.Fields = content.TextFields()
		data.Image = content.Image
	}
	c.HTML(status, "generate.html", data)
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderGenerate(c, http.StatusOK, s.newPage(c, "AI Social Media Post Generator", "generate"))
}

func (s *Server) handleGenerate(c *gin.Context) {
	sess := sessionFrom(c)
	data := s.newPage(c, "AI Social Media Post Generator", "generate")

	var req models.GenerationRequest
	if err := c.ShouldBind(&req); err != nil {
		data.Error = "Please fill in all required fields"
		s.renderGenerate(c, http.StatusBadRequest, data)
		return
	}
	data.Form = req

	release, err := s.guard.Acquire(sess.ID)
	if err != nil {
		data.Error = "A generation is already in progress"
		s.renderGenerate(c, http.StatusConflict, data)
		return
	}
	defer release()

	content, err := s.generator.Generate(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		var vErr *agents.ValidationError
		if errors.As(err, &vErr) {
			status = http.StatusBadRequest
			data.Error = "Please fill in all required fields"
		} else {
			s.logger.Error("❌ Generation failed", zap.String("session", sess.ID), zap.Error(err))
			data.Error = generation.UserMessage(err)
		}
		s.renderGenerate(c, status, data)
		return
	}

	if err := sess.Posts.SetLastGenerated(c.Request.Context(), *content); err != nil {
		s.logger.Warn("⚠️ Failed to persist generated content", zap.Error(err))
		data.Fields = content.TextFields()
		data.Image = content.Image
		c.HTML(http.StatusOK, "generate.html", data)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleSaveGenerated(c *gin.Context) {
	sess := sessionFrom(c)
	ctx := c.Request.Context()

	content := sess.Posts.LastGenerated(ctx)
	if content == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	field := c.Param("field")
	value, err := content.Field(field)
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	if value == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	post := models.NewTextPost(value)
	if field == models.FieldImage {
		post = models.NewImagePost(value)
	}
	if _, err := sess.Posts.AppendSavedPost(ctx, post); err != nil {
		s.logger.Warn("⚠️ Failed to save post", zap.Error(err))
	}

	redirectWithNotice(c, "/", "Post saved")
}

func (s *Server) handleDeleteGenerated(c *gin.Context) {
	sess := sessionFrom(c)
	if _, err := sess.Posts.DeleteGeneratedField(c.Request.Context(), c.Param("field")); err != nil {
		var sErr *storage.StorageError
		if !errors.As(err, &sErr) {
			c.String(http.StatusNotFound, err.Error())
			return
		}
		s.logger.Warn("⚠️ Failed to delete generated field", zap.Error(err))
	}
	redirectWithNotice(c, "/", "Post deleted")
}

func (s *Server) handleSaved(c *gin.Context) {
	sess := sessionFrom(c)
	data := s.newPage(c, "Saved Posts", "saved")
	data.CanShare = s.sharer != nil && s.sharer.Configured()

	editing := -1
	if v := c.Query("edit"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			editing = i
		}
	}

	for i, post := range sess.Posts.SavedPosts(c.Request.Context()) {
		data.Saved = append(data.Saved, savedView{
			Index:   i,
			Post:    post,
			Editing: i == editing && !post.IsImage(),
		})
	}

	c.HTML(http.StatusOK, "saved.html", data)
}

func (s *Server) handleUpdateSaved(c *gin.Context) {
	index, ok := savedIndex(c)
	if !ok {
		return
	}
	sess := sessionFrom(c)

	_, err := sess.Posts.UpdateSavedPost(c.Request.Context(), index, c.PostForm("content"))
	if s.savedPostError(c, err) {
		return
	}
	redirectWithNotice(c, "/saved", "Post updated successfully!")
}

func (s *Server) handleDeleteSaved(c *gin.Context) {
	index, ok := savedIndex(c)
	if !ok {
		return
	}
	sess := sessionFrom(c)

	_, err := sess.Posts.DeleteSavedPost(c.Request.Context(), index)
	if s.savedPostError(c, err) {
		return
	}
	redirectWithNotice(c, "/saved", "Post deleted successfully!")
}

func (s *Server) handleDownloadSaved(c *gin.Context) {
	index, ok := savedIndex(c)
	if !ok {
		return
	}
	sess := sessionFrom(c)

	post, err := sess.Posts.SavedPost(c.Request.Context(), index)
	if s.savedPostError(c, err) {
		return
	}

	if !post.IsImage() {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="post-%d.txt"`, index+1))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(post.Content))
		return
	}

	img, err := models.ParseDataURI(post.Content)
	if err != nil {
		s.logger.Warn("⚠️ Saved image is not a valid data URI", zap.Int("index", index), zap.Error(err))
		c.String(http.StatusUnprocessableEntity, err.Error())
		return
	}
	filename := fmt.Sprintf("image-%d%s", index+1, models.ImageExtension(img.MimeType))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, img.MimeType, img.Data)
}

func (s *Server) handleShareSaved(c *gin.Context) {
	index, ok := savedIndex(c)
	if !ok {
		return
	}
	if s.sharer == nil || !s.sharer.Configured() {
		c.String(http.StatusNotFound, "sharing is not configured")
		return
	}
	sess := sessionFrom(c)

	post, err := sess.Posts.SavedPost(c.Request.Context(), index)
	if s.savedPostError(c, err) {
		return
	}
	if err := s.sharer.SharePost(c.Request.Context(), post); err != nil {
		s.logger.Error("❌ Failed to share post", zap.Int("index", index), zap.Error(err))
		redirectWithNotice(c, "/saved", "Failed to share post")
		return
	}
	redirectWithNotice(c, "/saved", "Post shared to Slack")
}

func (s *Server) handleToggleTheme(c *gin.Context) {
	sess := sessionFrom(c)
	sess.Prefs.ToggleTheme()
	if err := sess.Posts.SetPreferences(c.Request.Context(), sess.Prefs); err != nil {
		s.logger.Warn("⚠️ Failed to persist theme", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, returnPath(c))
}

func (s *Server) handleToggleSidebar(c *gin.Context) {
	sess := sessionFrom(c)
	sess.Prefs.SidebarOpen = !sess.Prefs.SidebarOpen
	if err := sess.Posts.SetPreferences(c.Request.Context(), sess.Prefs); err != nil {
		s.logger.Warn("⚠️ Failed to persist sidebar state", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, returnPath(c))
}

func (s *Server) handleResetSession(c *gin.Context) {
	sess := sessionFrom(c)
	if err := sess.Posts.Clear(c.Request.Context()); err != nil {
		s.logger.Warn("⚠️ Failed to clear session", zap.Error(err))
	}
	s.setSessionCookie(c, "", -1)
	s.logger.Info("🧹 Session reset", zap.String("session", sess.ID))
	c.Redirect(http.StatusSeeOther, "/")
}

// savedPostError writes the response for a failed saved-post operation.
// Storage write failures are logged and treated as done.
func (s *Server) savedPostError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, storage.ErrIndexOutOfRange) {
		c.String(http.StatusNotFound, err.Error())
		return true
	}
	s.logger.Warn("⚠️ Saved posts write failed", zap.Error(err))
	return false
}

func savedIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.String(http.StatusBadRequest, "invalid index")
		return 0, false
	}
	return index, true
}

func redirectWithNotice(c *gin.Context, path, notice string) {
	c.Redirect(http.StatusSeeOther, path+"?notice="+url.QueryEscape(notice))
}

// returnPath keeps preference toggles on the page they were made from
func returnPath(c *gin.Context) string {
	if next := c.PostForm("next"); next == "/saved" {
		return next
	}
	return "/"
}

func (d pageData) ThemeClass() string {
	return strings.ToLower(d.Prefs.Theme)
}
