package validation

import (
	"strings"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestValidateNewPost(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fields  PostFields
		wantErr string
	}{
		{"missing title", PostFields{Content: strPtr("body")}, "title is required"},
		{"blank title", PostFields{Title: strPtr("   "), Content: strPtr("body")}, "title is required"},
		{"missing content", PostFields{Title: strPtr("Hello")}, "content is required"},
		{"title too long", PostFields{Title: strPtr(strings.Repeat("x", 256)), Content: strPtr("body")}, "title must not exceed"},
		{"content too long", PostFields{Title: strPtr("Hello"), Content: strPtr(strings.Repeat("x", 50001))}, "content must not exceed"},
		{"valid", PostFields{Title: strPtr("Hello"), Content: strPtr("body")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateNewPost(tt.fields)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNewPost_Normalizes(t *testing.T) {
	t.Parallel()
	ts := time.Now().UTC()
	out, err := ValidateNewPost(PostFields{
		Title:       strPtr("  Hello  "),
		Content:     strPtr("body"),
		PublishedAt: models.NewOptionalTime(&ts),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", *out.Title)
	require.NotNil(t, out.IsDraft)
	assert.False(t, *out.IsDraft)
	assert.Equal(t, ts, *out.PublishedAt.Time)
}

func TestValidateNewPost_MultibyteTitleAtLimit(t *testing.T) {
	t.Parallel()
	_, err := ValidateNewPost(PostFields{Title: strPtr(strings.Repeat("é", MaxTitleLength)), Content: strPtr("body")})
	assert.NoError(t, err)
}

func TestValidatePostUpdate(t *testing.T) {
	t.Parallel()

	_, err := ValidatePostUpdate(PostFields{})
	assert.Error(t, err)

	_, err = ValidatePostUpdate(PostFields{Title: strPtr("")})
	assert.Error(t, err)

	_, err = ValidatePostUpdate(PostFields{IsDraft: boolPtr(true)})
	assert.NoError(t, err)

	_, err = ValidatePostUpdate(PostFields{PublishedAt: models.NewOptionalTime(nil)})
	assert.NoError(t, err, "clearing the publication time is a valid update")
}
