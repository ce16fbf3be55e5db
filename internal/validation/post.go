package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"quill/internal/models"
)

const (
	// MaxTitleLength is the longest accepted post title, in characters.
	MaxTitleLength = 255
	// MaxContentLength is the longest accepted post body, in characters.
	MaxContentLength = 50000
)

// PostFields is a post payload. Nil pointers and an unset PublishedAt mean
// the field was not supplied.
type PostFields struct {
	Title       *string             `json:"title"`
	Content     *string             `json:"content"`
	IsDraft     *bool               `json:"is_draft"`
	PublishedAt models.OptionalTime `json:"published_at"`
}

// ValidateNewPost vets the fields for a post about to be created. Title and
// content are required; is_draft defaults to false.
func ValidateNewPost(f PostFields) (PostFields, error) {
	if f.Title == nil || strings.TrimSpace(*f.Title) == "" {
		return f, fmt.Errorf("title is required")
	}
	if f.Content == nil || strings.TrimSpace(*f.Content) == "" {
		return f, fmt.Errorf("content is required")
	}
	if f.IsDraft == nil {
		draft := false
		f.IsDraft = &draft
	}
	return validateSupplied(f)
}

// ValidatePostUpdate vets a partial update. Only supplied fields are checked.
func ValidatePostUpdate(f PostFields) (PostFields, error) {
	if f.Title == nil && f.Content == nil && f.IsDraft == nil && !f.PublishedAt.Set {
		return f, fmt.Errorf("at least one field must be provided")
	}
	return validateSupplied(f)
}

func validateSupplied(f PostFields) (PostFields, error) {
	if f.Title != nil {
		title := strings.TrimSpace(*f.Title)
		if title == "" {
			return f, fmt.Errorf("title cannot be empty")
		}
		if utf8.RuneCountInString(title) > MaxTitleLength {
			return f, fmt.Errorf("title must not exceed %d characters", MaxTitleLength)
		}
		f.Title = &title
	}
	if f.Content != nil {
		if strings.TrimSpace(*f.Content) == "" {
			return f, fmt.Errorf("content cannot be empty")
		}
		if utf8.RuneCountInString(*f.Content) > MaxContentLength {
			return f, fmt.Errorf("content must not exceed %d characters", MaxContentLength)
		}
	}
	return f, nil
}
