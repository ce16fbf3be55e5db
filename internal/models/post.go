// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog post owned by a single user.
//
// Publication state is never stored. A post is published when it is not a
// draft and its PublishedAt is set and not after the current instant; see
// IsPublished and PublishedAt.
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	IsDraft     bool           `gorm:"not null;default:false" json:"is_draft"`
	PublishedAt *time.Time     `gorm:"index" json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostState is the derived publication state of a post at a given instant.
type PostState string

const (
	PostStateDraft       PostState = "draft"
	PostStateUnscheduled PostState = "unscheduled"
	PostStateScheduled   PostState = "scheduled"
	PostStatePublished   PostState = "published"
)

// IsPublished reports whether the post is visible to readers at now.
// A publication time equal to now counts as published.
func (p *Post) IsPublished(now time.Time) bool {
	return !p.IsDraft && p.PublishedAt != nil && !p.PublishedAt.After(now)
}

// State returns the derived publication state at now.
func (p *Post) State(now time.Time) PostState {
	switch {
	case p.IsDraft:
		return PostStateDraft
	case p.PublishedAt == nil:
		return PostStateUnscheduled
	case p.PublishedAt.After(now):
		return PostStateScheduled
	default:
		return PostStatePublished
	}
}

// PublishedAt is the query form of IsPublished. Listing queries must use this
// scope with the same instant the caller would pass to IsPublished.
// Stored timestamps are UTC, and SQLite compares them as text, so now is
// converted before it is bound.
func PublishedAt(now time.Time) func(*gorm.DB) *gorm.DB {
	now = now.UTC()
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("posts.is_draft = ?", false).
			Where("posts.published_at IS NOT NULL").
			Where("posts.published_at <= ?", now)
	}
}
