package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestPost_IsPublished(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		isDraft     bool
		publishedAt *time.Time
		want        bool
	}{
		{"draft with past timestamp", true, timePtr(now.Add(-time.Hour)), false},
		{"draft with future timestamp", true, timePtr(now.Add(time.Hour)), false},
		{"draft without timestamp", true, nil, false},
		{"non-draft without timestamp", false, nil, false},
		{"non-draft in the past", false, timePtr(now.Add(-time.Hour)), true},
		{"non-draft exactly now", false, timePtr(now), true},
		{"non-draft one nanosecond ahead", false, timePtr(now.Add(time.Nanosecond)), false},
		{"non-draft scheduled", false, timePtr(now.Add(time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{IsDraft: tt.isDraft, PublishedAt: tt.publishedAt}
			assert.Equal(t, tt.want, p.IsPublished(now))
		})
	}
}

func TestPost_IsPublished_DraftAlwaysHidden(t *testing.T) {
	now := time.Now().UTC()
	for offset := -48; offset <= 48; offset += 6 {
		p := &Post{IsDraft: true, PublishedAt: timePtr(now.Add(time.Duration(offset) * time.Hour))}
		assert.False(t, p.IsPublished(now), "offset %dh", offset)
	}
}

func TestPost_IsPublished_OtherTimezone(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	loc := time.FixedZone("UTC+5", 5*60*60)
	// Same instant expressed in a different zone.
	p := &Post{PublishedAt: timePtr(now.In(loc))}
	assert.True(t, p.IsPublished(now))
}

func TestPost_State(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, PostStateDraft, (&Post{IsDraft: true, PublishedAt: timePtr(now)}).State(now))
	assert.Equal(t, PostStateUnscheduled, (&Post{}).State(now))
	assert.Equal(t, PostStateScheduled, (&Post{PublishedAt: timePtr(now.Add(time.Minute))}).State(now))
	assert.Equal(t, PostStatePublished, (&Post{PublishedAt: timePtr(now)}).State(now))
}

func TestPost_StateAgreesWithIsPublished(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	stamps := []*time.Time{nil, timePtr(now.Add(-time.Hour)), timePtr(now), timePtr(now.Add(time.Hour))}

	for _, draft := range []bool{true, false} {
		for _, ts := range stamps {
			p := &Post{IsDraft: draft, PublishedAt: ts}
			assert.Equal(t, p.IsPublished(now), p.State(now) == PostStatePublished)
		}
	}
}

// Scenario: A is listed and readable, B is scheduled, C is a draft.
func TestPost_IsPublished_Scenario(t *testing.T) {
	now := time.Now().UTC()

	a := &Post{IsDraft: false, PublishedAt: timePtr(now.Add(-time.Hour))}
	b := &Post{IsDraft: false, PublishedAt: timePtr(now.Add(time.Hour))}
	c := &Post{IsDraft: true, PublishedAt: timePtr(now.Add(-time.Hour))}

	assert.True(t, a.IsPublished(now))
	assert.False(t, b.IsPublished(now))
	assert.False(t, c.IsPublished(now))
}
