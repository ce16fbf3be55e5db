// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"quill/internal/cache"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]*models.Post, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
	log     *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db:      db,
		metrics: observability.NewDatabaseMetrics(),
		log:     observability.NewRepoLogger("posts", middleware.Logger),
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("create", "posts")()

	normalizePublishedAt(post)
	if err := r.db.WithContext(ctx).Omit("User").Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, slog.Uint64("post_id", uint64(post.ID)), slog.Uint64("user_id", uint64(post.UserID)))
	return nil
}

// GetByID returns the stored post regardless of its publication state.
// Callers decide visibility against their own clock.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer r.metrics.TrackQuery("get_by_id", "posts")()

	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPublished returns one page of posts published at now, newest
// publication first, together with the total number of published posts.
func (r *postRepository) ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]*models.Post, int64, error) {
	defer r.metrics.TrackQuery("list_published", "posts")()

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Scopes(models.PublishedAt(now)).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	posts := []*models.Post{}
	if total == 0 {
		return posts, 0, nil
	}

	err := r.db.WithContext(ctx).
		Scopes(models.PublishedAt(now)).
		Preload("User").
		Order("posts.published_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// ListAll returns posts in every state, newest first. It backs operator
// tooling and is never exposed to readers.
func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	defer r.metrics.TrackQuery("list_all", "posts")()

	posts := []*models.Post{}
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Update persists the mutable fields of post. Ownership is never rewritten.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("update", "posts")()

	normalizePublishedAt(post)
	err := r.db.WithContext(ctx).
		Model(post).
		Select("title", "content", "is_draft", "published_at").
		Updates(post).Error
	if err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	r.log.LogUpdate(ctx, slog.Uint64("post_id", uint64(post.ID)))
	return nil
}

// normalizePublishedAt stores publication times in UTC so text comparison in
// SQLite agrees with IsPublished.
func normalizePublishedAt(post *models.Post) {
	if post.PublishedAt != nil {
		utc := post.PublishedAt.UTC()
		post.PublishedAt = &utc
	}
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer r.metrics.TrackQuery("delete", "posts")()

	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "delete")
		return models.NewInternalError(result.Error)
	}
	cache.InvalidatePost(ctx, id)
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	r.log.LogDelete(ctx, slog.Uint64("post_id", uint64(id)))
	return nil
}
