package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quillworks/blog-service/internal/domain"
	"github.com/quillworks/blog-service/internal/pagination"
	"github.com/quillworks/blog-service/internal/repository"
	"github.com/quillworks/blog-service/internal/service"
	pkglog "github.com/quillworks/blog-service/pkg/log"
	"github.com/quillworks/blog-service/pkg/middleware"
	"github.com/quillworks/blog-service/pkg/response"
	"github.com/quillworks/blog-service/pkg/storage"
)

const mediaURLTTL = 15 * time.Minute

// Handler handles HTTP requests for the blog service.
type Handler struct {
	feeds          service.FeedService
	posts          service.PostService
	follows        service.FollowService
	store          storage.Storage
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	feeds service.FeedService,
	posts service.PostService,
	follows service.FollowService,
	store storage.Storage,
	authMiddleware *middleware.AuthMiddleware,
) *Handler {
	return &Handler{
		feeds:          feeds,
		posts:          posts,
		follows:        follows,
		store:          store,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all routes onto the Gin engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		posts := api.Group("/posts")
		{
			// Reads are anonymous.
			posts.GET("", h.ListPosts)
			posts.GET("/:id", h.GetPost)
			// Writes require an actor; the actor becomes the author.
			posts.POST("", h.authMiddleware.RequireAuth(), h.CreatePost)
			posts.PUT("/:id", h.authMiddleware.RequireAuth(), h.EditPost)
			posts.POST("/:id/comments", h.authMiddleware.RequireAuth(), h.AddComment)
		}

		api.GET("/groups/:slug/posts", h.ListGroupPosts)

		users := api.Group("/users")
		{
			users.GET("/:username/posts", h.authMiddleware.OptionalAuth(), h.ListAuthorPosts)
			users.POST("/:username/follow", h.authMiddleware.RequireAuth(), h.FollowAuthor)
			users.DELETE("/:username/follow", h.authMiddleware.RequireAuth(), h.UnfollowAuthor)
		}

		api.GET("/feed", h.authMiddleware.RequireAuth(), h.FollowedFeed)

		api.POST("/admin/cache/clear", h.authMiddleware.RequireAuth(), h.ClearFeedCache)
	}

	r.GET("/media/*key", h.Media)
}

// ListPosts handles GET /api/v1/posts — the cached all-posts feed.
func (h *Handler) ListPosts(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))

	feed, err := h.feeds.AllPosts(c.Request.Context(), page)
	if err != nil {
		logger := pkglog.Ctx(c.Request.Context())
		logger.Error().Err(err).Msg("all-posts feed failed")
		response.InternalError(c, "failed to list posts")
		return
	}

	response.Success(c, feed)
}

// ListGroupPosts handles GET /api/v1/groups/:slug/posts.
func (h *Handler) ListGroupPosts(c *gin.Context) {
	slug := c.Param("slug")
	page := pagination.ParsePage(c.Query("page"))

	feed, err := h.feeds.GroupPosts(c.Request.Context(), slug, page)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			response.NotFound(c, "group not found")
			return
		}
		logger := pkglog.Ctx(c.Request.Context())
		logger.Error().Err(err).Str("slug", slug).Msg("group feed failed")
		response.InternalError(c, "failed to list group posts")
		return
	}

	response.Success(c, feed)
}

// ListAuthorPosts handles GET /api/v1/users/:username/posts. The viewer may
// be anonymous; the following flag is false in that case.
func (h *Handler) ListAuthorPosts(c *gin.Context) {
	username := c.Param("username")
	page := pagination.ParsePage(c.Query("page"))
	viewerID := middleware.GetUserID(c)

	feed, err := h.feeds.AuthorPosts(c.Request.Context(), username, page, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			response.NotFound(c, "author not found")
			return
		}
		logger := pkglog.Ctx(c.Request.Context())
		logger.Error().Err(err).Str("username", username).Msg("profile feed failed")
		response.InternalError(c, "failed to list author posts")
		return
	}

	response.Success(c, feed)
}

// GetPost handles GET /api/v1/posts/:id — the post with its comments.
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}

	detail, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		logger := pkglog.Ctx(c.Request.Context())
		logger.Error().Err(err).Uint("post_id", id).Msg("get post failed")
		response.InternalError(c, "failed to get post")
		return
	}

	response.Success(c, detail)
}

// CreatePost handles POST /api/v1/posts (multipart: text, group_id, image).
func (h *Handler) CreatePost(c *gin.Context) {
	actor := actorFrom(c)

	input, ok := postInputFrom(c)
	if !ok {
		return
	}
	if input.Image != nil {
		defer input.Image.Reader.(io.Closer).Close()
	}

	post, err := h.posts.CreatePost(c.Request.Context(), actor, input)
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) {
			response.BadRequest(c, "text must not be empty")
			return
		}
		logger := pkglog.Ctx(c.Request.Context())
		logger.Error().Err(err).Msg("create post failed")
		response.InternalError(c, "failed to create post")
		return
	}

	response.Created(c, post)
}

// EditPost handles PUT /api/v1/posts/:id. A non-author is sent back to the
// post's read view instead of an error page.
func (h *Handler) EditPost(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := parsePostID(c)
	if !ok {
		return
	}

	input, ok := postInputFrom(c)
	if !ok {
		return
	}
	if input.Image != nil {
		defer input.Image.Reader.(io.Closer).Close()
	}

	post, err := h.posts.EditPost(c.Request.Context(), actor, id, input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			response.NotFound(c, "post not found")
		case errors.Is(err, service.ErrNotPostAuthor):
			c.Redirect(http.StatusSeeOther, "/api/v1/posts/"+strconv.FormatUint(uint64(id), 10))
		case errors.Is(err, service.ErrEmptyText):
			response.BadRequest(c, "text must not be empty")
		default:
			logger := pkglog.Ctx(c.Request.Context())
			logger.Error().Err(err).Uint("post_id", id).Msg("edit post failed")
			response.InternalError(c, "failed to edit post")
		}
		return
	}

	response.Success(c, post)
}

// commentRequest is the request body for POST /posts/:id/comments.
type commentRequest struct {
	Text string `json:"text"`
}

// AddComment handles POST /api/v1/posts/:id/comments.
func (h *Handler) AddComment(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := parsePostID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.posts.AddComment(c.Request.Context(), actor, id, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			response.NotFound(c, "post not found")
		case errors.Is(err, service.ErrEmptyText):
			response.BadRequest(c, "text must not be empty")
		default:
			logger := pkglog.Ctx(c.Request.Context())
			logger.Error().Err(err).Uint("post_id", id).Msg("add comment failed")
			response.InternalError(c, "failed to add comment")
		}
		return
	}

	response.Created(c, comment)
}

// FollowAuthor handles POST /api/v1/users/:username/follow.
func (h *Handler) FollowAuthor(c *gin.Context) {
	actor := actorFrom(c)
	username := c.Param("username")

	if err := h.follows.Follow(c.Request.Context(), actor, username); err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			response.NotFound(c, "author not found")
			return
		}
		logger := pkglog.Ctx(c.Request.Context())
		logger.Error().Err(err).Str("username", username).Msg("follow failed")
		response.InternalError(c, "failed to follow author")
		return
	}

	response.Success(c, gin.H{"message": "followed"})
}

// UnfollowAuthor handles DELETE /api/v1/users/:username/follow.
func (h *Handler) UnfollowAuthor(c *gin.Context) {
	actor := actorFrom(c)
	username := c.Param("username")

	if err := h.follows.Unfollow(c.Request.Context(), actor, username); err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			response.NotFound(c, "author not found")
			return
		}
		logger := pkglog.Ctx(c.Request.Context())
		logger.Error().Err(err).Str("username", username).Msg("unfollow failed")
		response.InternalError(c, "failed to unfollow author")
		return
	}

	c.Status(http.StatusNoContent)
}

// FollowedFeed handles GET /api/v1/feed — posts from followed authors.
func (h *Handler) FollowedFeed(c *gin.Context) {
	viewerID := middleware.GetUserID(c)
	page := pagination.ParsePage(c.Query("page"))

	feed, err := h.feeds.FollowedPosts(c.Request.Context(), viewerID, page)
	if err != nil {
		logger := pkglog.Ctx(c.Request.Context())
		logger.Error().Err(err).Msg("followed feed failed")
		response.InternalError(c, "failed to list followed posts")
		return
	}

	response.Success(c, feed)
}

// ClearFeedCache handles POST /api/v1/admin/cache/clear — the explicit
// administrative invalidation of the all-posts feed cache.
func (h *Handler) ClearFeedCache(c *gin.Context) {
	if err := h.feeds.ClearFeedCache(c.Request.Context()); err != nil {
		logger := pkglog.Ctx(c.Request.Context())
		logger.Error().Err(err).Msg("cache clear failed")
		response.InternalError(c, "failed to clear feed cache")
		return
	}

	response.Success(c, gin.H{"message": "feed cache cleared"})
}

// Media handles GET /media/*key. Remote backends resolve to an absolute URL
// and get a redirect; local storage streams from this process.
func (h *Handler) Media(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	ctx := c.Request.Context()

	url, err := h.store.GetURL(ctx, key, mediaURLTTL)
	if err != nil {
		response.NotFound(c, "media not found")
		return
	}

	if !strings.HasPrefix(url, "/") {
		c.Redirect(http.StatusFound, url)
		return
	}

	r, err := h.store.Read(ctx, key)
	if err != nil {
		response.NotFound(c, "media not found")
		return
	}
	defer r.Close()

	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		c.Header("Content-Type", ct)
	}
	c.Status(http.StatusOK)
	io.Copy(c.Writer, r)
}

// actorFrom builds the actor from the identity the auth middleware stored.
func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:       middleware.GetUserID(c),
		Username: middleware.GetUsername(c),
	}
}

// parsePostID reads the :id path parameter; anything non-numeric is treated
// as a missing resource.
func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.NotFound(c, "post not found")
		return 0, false
	}
	return uint(id), true
}

// postInputFrom reads the multipart fields shared by create and edit.
func postInputFrom(c *gin.Context) (domain.PostInput, bool) {
	input := domain.PostInput{Text: c.PostForm("text")}

	if raw := c.PostForm("group_id"); raw != "" {
		groupID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "group_id must be a number")
			return domain.PostInput{}, false
		}
		id := uint(groupID)
		input.GroupID = &id
	}

	fileHeader, err := c.FormFile("image")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.BadRequest(c, "failed to read image")
			return domain.PostInput{}, false
		}
		input.Image = &domain.ImageUpload{
			Reader:      file,
			Size:        fileHeader.Size,
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}

	return input, true
}
