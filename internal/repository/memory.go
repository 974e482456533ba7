package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"inkwell/internal/model"
)

// MemoryUserRepository is a map-backed UserRepository for tests and local
// runs without MySQL.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return fmt.Errorf("user %s already exists", user.Email)
	}
	r.users[user.Email] = *user
	return nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

// MemoryPostRepository is a map-backed PostRepository. Like the MySQL
// implementation it refuses id collisions and lists in id order.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts map[string]model.Post
}

// NewMemoryPostRepository creates an empty in-memory post store.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{posts: make(map[string]model.Post)}
}

func (r *MemoryPostRepository) Create(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		if err := post.BeforeCreate(nil); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.posts[post.ID]; exists {
		return fmt.Errorf("duplicate post id %s", post.ID)
	}
	r.posts[post.ID] = *post
	return nil
}

func (r *MemoryPostRepository) List(ctx context.Context) ([]model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	posts := make([]model.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (r *MemoryPostRepository) ListPage(ctx context.Context, offset, limit int) ([]model.Post, error) {
	posts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if offset >= len(posts) {
		return []model.Post{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}
