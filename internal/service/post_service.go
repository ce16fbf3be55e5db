// Package service holds the business rules that sit between HTTP handlers and repositories.
package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/notifications"
	"quill/internal/observability"
	"quill/internal/policy"
	"quill/internal/repository"
	"quill/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// PostsPerPage is the size of a page of the public post list.
const PostsPerPage = 20

// MaxPage bounds the page number so the row offset stays a valid int32.
const MaxPage = math.MaxInt32 / PostsPerPage

// EventPublisher receives post lifecycle events.
type EventPublisher interface {
	PublishPostEvent(ctx context.Context, event notifications.PostEvent) error
}

// PostPage is one page of the public post list.
type PostPage struct {
	Data        []*models.Post `json:"data"`
	CurrentPage int            `json:"current_page"`
	PerPage     int            `json:"per_page"`
	Total       int64          `json:"total"`
	LastPage    int            `json:"last_page"`
}

type PostService struct {
	postRepo repository.PostRepository
	events   EventPublisher
	now      func() time.Time
}

func NewPostService(postRepo repository.PostRepository, events EventPublisher) *PostService {
	return &PostService{
		postRepo: postRepo,
		events:   events,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for every visibility decision.
func (s *PostService) WithClock(now func() time.Time) *PostService {
	s.now = now
	return s
}

// ListPublished returns the given 1-based page of posts published right now.
func (s *PostService) ListPublished(ctx context.Context, page int) (*PostPage, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.ListPublished")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	posts, total, err := s.postRepo.ListPublished(ctx, s.now(), PostsPerPage, (page-1)*PostsPerPage)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	lastPage := int((total + PostsPerPage - 1) / PostsPerPage)
	if lastPage < 1 {
		lastPage = 1
	}
	return &PostPage{
		Data:        posts,
		CurrentPage: page,
		PerPage:     PostsPerPage,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}

// GetPost returns a post only if it is published. Absent and unpublished
// posts produce the same not-found error.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.GetPost")
	defer span.End()
	span.AddAttributes(attribute.Int64("post.id", int64(id)))

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	state := post.State(s.now())
	observability.PostVisibilityDecisions.WithLabelValues(string(state)).Inc()
	if state != models.PostStatePublished {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

// CreatePost stores a new post owned by userID.
func (s *PostService) CreatePost(ctx context.Context, userID uint, fields validation.PostFields) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.CreatePost")
	defer span.End()

	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	fields, err := validation.ValidateNewPost(fields)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		UserID:      userID,
		Title:       *fields.Title,
		Content:     *fields.Content,
		IsDraft:     *fields.IsDraft,
		PublishedAt: fields.PublishedAt.Time,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		span.SetError(err)
		return nil, err
	}

	s.publish(ctx, notifications.EventPostCreated, post)

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetEditablePost returns a post in any state, provided userID owns it.
func (s *PostService) GetEditablePost(ctx context.Context, userID, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(policy.ActionUpdate, userID, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies the supplied fields to a post owned by userID.
func (s *PostService) UpdatePost(ctx context.Context, userID, id uint, fields validation.PostFields) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.UpdatePost")
	defer span.End()

	post, err := s.GetEditablePost(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	fields, err = validation.ValidatePostUpdate(fields)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if fields.Title != nil {
		post.Title = *fields.Title
	}
	if fields.Content != nil {
		post.Content = *fields.Content
	}
	if fields.IsDraft != nil {
		post.IsDraft = *fields.IsDraft
	}
	if fields.PublishedAt.Set {
		post.PublishedAt = fields.PublishedAt.Time
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		span.SetError(err)
		return nil, err
	}

	s.publish(ctx, notifications.EventPostUpdated, post)
	return post, nil
}

// DeletePost soft-deletes a post owned by userID.
func (s *PostService) DeletePost(ctx context.Context, userID, id uint) error {
	span, ctx := observability.NewSpan(ctx, "PostService.DeletePost")
	defer span.End()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(policy.ActionDelete, userID, post); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		span.SetError(err)
		return err
	}

	s.publish(ctx, notifications.EventPostDeleted, post)
	return nil
}

// ListAllPosts returns posts in every state for operator tooling.
func (s *PostService) ListAllPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListAll(ctx, limit, offset)
}

// Now exposes the service clock so callers can report derived states consistently.
func (s *PostService) Now() time.Time {
	return s.now()
}

func (s *PostService) publish(ctx context.Context, eventType string, post *models.Post) {
	if s.events == nil {
		return
	}
	err := s.events.PublishPostEvent(ctx, notifications.PostEvent{
		Type:       eventType,
		PostID:     post.ID,
		UserID:     post.UserID,
		Visible:    post.IsPublished(s.now()),
		OccurredAt: s.now(),
	})
	result := "ok"
	if err != nil {
		result = "error"
		middleware.Logger.WarnContext(ctx, "failed to publish post event",
			slog.String("event_type", eventType),
			slog.Uint64("post_id", uint64(post.ID)),
			slog.String("error", err.Error()),
		)
	}
	observability.PostEventsPublished.WithLabelValues(eventType, result).Inc()
}
