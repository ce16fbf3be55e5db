// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "Quill!Passw0rd"

// Options controls how much data a Factory creates.
type Options struct {
	Users        int
	PostsPerUser int
	// Seed makes generated content reproducible; 0 picks a random seed.
	Seed int64
}

// Summary counts what a seed run created, by derived post state.
type Summary struct {
	Users int
	Posts map[models.PostState]int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.Users <= 0 {
		opts.Users = 3
	}
	if opts.PostsPerUser <= 0 {
		opts.PostsPerUser = 8
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed)}
}

// BuildUser constructs an unsaved user with a hashed DefaultPassword.
func (f *Factory) BuildUser(hash string) *models.User {
	username := fmt.Sprintf("%s_%d", f.faker.Username(), f.faker.Number(100, 999))
	if len(username) > 30 {
		username = username[:30]
	}
	return &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: hash,
	}
}

// BuildPost constructs an unsaved post for user that will be in state at now.
func (f *Factory) BuildPost(user *models.User, state models.PostState, now time.Time) *models.Post {
	post := &models.Post{
		UserID:  user.ID,
		Title:   f.faker.Sentence(5),
		Content: f.faker.Paragraph(2, 4, 12, "\n\n"),
	}

	past := now.Add(-time.Duration(f.faker.Number(1, 90*24)) * time.Hour)
	future := now.Add(time.Duration(f.faker.Number(1, 30*24)) * time.Hour)

	switch state {
	case models.PostStatePublished:
		post.PublishedAt = &past
	case models.PostStateScheduled:
		post.PublishedAt = &future
	case models.PostStateDraft:
		post.IsDraft = true
		if f.faker.Bool() {
			post.PublishedAt = &past
		}
	case models.PostStateUnscheduled:
	}
	return post
}

// stateCycle weights published posts so the public list is never sparse.
var stateCycle = []models.PostState{
	models.PostStatePublished,
	models.PostStatePublished,
	models.PostStateScheduled,
	models.PostStatePublished,
	models.PostStateDraft,
	models.PostStateUnscheduled,
}

// Run creates users and posts covering every publication state.
func (f *Factory) Run(ctx context.Context, now time.Time) (*Summary, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	summary := &Summary{Posts: make(map[models.PostState]int)}
	err = f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < f.opts.Users; i++ {
			user := f.BuildUser(string(hash))
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			summary.Users++

			posts := make([]*models.Post, 0, f.opts.PostsPerUser)
			for j := 0; j < f.opts.PostsPerUser; j++ {
				state := stateCycle[(i+j)%len(stateCycle)]
				posts = append(posts, f.BuildPost(user, state, now))
				summary.Posts[state]++
			}
			if err := tx.Omit("User").CreateInBatches(posts, 100).Error; err != nil {
				return fmt.Errorf("create posts: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
