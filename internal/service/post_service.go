package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"inkwell/internal/cache"
	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const (
	// DefaultPageSize applies when the caller supplies no page size.
	DefaultPageSize = 10
	// MaxPageSize caps a single page.
	MaxPageSize = 100

	postListCachePrefix = "cache:posts:"
	postListCacheTTL    = time.Hour
)

// PostService creates and lists blog posts. Callers of Create are trusted to
// have passed token validation already; the HTTP layer enforces that.
type PostService interface {
	Create(ctx context.Context, title, content string, tags []string) (*model.Post, error)
	ListAll(ctx context.Context) ([]model.Post, error)
	ListPage(ctx context.Context, page, pageSize int) ([]model.Post, error)
}

type postService struct {
	posts  repository.PostRepository
	cache  *cache.Client
	logger *zap.SugaredLogger
}

// NewPostService creates a post service. cache may be nil, in which case
// listings always hit the repository.
func NewPostService(posts repository.PostRepository, cacheClient *cache.Client, logger *zap.SugaredLogger) PostService {
	return &postService{
		posts:  posts,
		cache:  cacheClient,
		logger: logger,
	}
}

// Create persists a new post in a single attempt. The id is generated by the
// model; storage failures are wrapped and surfaced immediately, no retries.
func (s *postService) Create(ctx context.Context, title, content string, tags []string) (*model.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", apperrors.ErrValidation)
	}
	if tags == nil {
		tags = []string{}
	}

	post := &model.Post{
		Title:   title,
		Content: content,
		Tags:    tags,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.NewPersistenceError("create", "post", err)
	}

	s.cache.DeleteByPrefix(ctx, postListCachePrefix)
	s.logger.Infow("post created", "id", post.ID, "title", post.Title)
	return post, nil
}

// ListAll returns every post ordered by id.
func (s *postService) ListAll(ctx context.Context) ([]model.Post, error) {
	cacheKey := postListCachePrefix + "all"
	var cached []model.Post
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list", "posts", err)
	}

	s.cache.SetJSON(ctx, cacheKey, posts, postListCacheTTL)
	return posts, nil
}

// ListPage returns one page from the id-ordered sequence. Out-of-range
// values are clamped rather than rejected: page < 1 becomes 1, pageSize < 1
// becomes the default, pageSize > MaxPageSize becomes MaxPageSize. An offset
// past the end yields an empty page, not an error.
func (s *postService) ListPage(ctx context.Context, page, pageSize int) ([]model.Post, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	cacheKey := fmt.Sprintf("%spage=%d:size=%d", postListCachePrefix, page, pageSize)
	var cached []model.Post
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	posts, err := s.posts.ListPage(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list", "posts", err)
	}

	s.cache.SetJSON(ctx, cacheKey, posts, postListCacheTTL)
	return posts, nil
}
