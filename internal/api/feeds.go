package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noobmasters/feedcache/internal/feed"
	"github.com/noobmasters/feedcache/pkg/logging"
	"github.com/noobmasters/feedcache/pkg/telemetry"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// FeedAPI serves the cached read path: newsfeed and timeline pages. A
// cache hit is returned as-is; a miss falls back to the authoritative
// rebuild and seeds the cache.
type FeedAPI struct {
	pages     feed.PageStore
	rebuilder *feed.Rebuilder
	logger    *zap.Logger
}

// NewFeedAPI creates a new feed API
func NewFeedAPI(pages feed.PageStore, rebuilder *feed.Rebuilder) *FeedAPI {
	return &FeedAPI{
		pages:     pages,
		rebuilder: rebuilder,
		logger:    logging.WithComponent("api"),
	}
}

// RegisterRoutes registers the feed routes on a gin engine
func (a *FeedAPI) RegisterRoutes(router *gin.Engine) {
	router.GET("/newsfeed", a.GetNewsFeed)
	router.GET("/timeline", a.GetTimeline)
}

// GetNewsFeed handles GET /newsfeed
func (a *FeedAPI) GetNewsFeed(c *gin.Context) {
	a.serve(c, feed.ViewNewsfeed, a.rebuilder.NewsFeed)
}

// GetTimeline handles GET /timeline
func (a *FeedAPI) GetTimeline(c *gin.Context) {
	a.serve(c, feed.ViewTimeline, a.rebuilder.Timeline)
}

func (a *FeedAPI) serve(c *gin.Context, view feed.ViewKind, rebuild func(context.Context, string, int, int) (*feed.Page, error)) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.get_"+string(view))
	defer span.End()

	// The gateway authenticates and forwards the caller's identity
	userID := c.GetHeader("X-User-Id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing user identity"})
		return
	}

	size := queryInt(c, "size", defaultPageSize)
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	pageNum := queryInt(c, "page", 0)
	if pageNum < 0 {
		pageNum = 0
	}

	cached, err := a.pages.Get(ctx, view, userID)
	if err != nil {
		// Degrade to the authoritative path on cache trouble
		a.logger.Warn("Cache read failed",
			zap.String("view", string(view)),
			zap.String("user_id", userID),
			zap.Error(err))
	}
	if cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	rebuilt, err := rebuild(ctx, userID, size, pageNum)
	if err != nil {
		a.logger.Error("Feed rebuild failed",
			zap.String("view", string(view)),
			zap.String("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not build feed"})
		return
	}

	if err := a.pages.Set(ctx, view, userID, rebuilt); err != nil {
		a.logger.Warn("Cache seed failed",
			zap.String("view", string(view)),
			zap.String("user_id", userID),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, rebuilt)
}

func queryInt(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}
