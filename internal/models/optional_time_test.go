package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalTime_UnmarshalJSON(t *testing.T) {
	var body struct {
		PublishedAt OptionalTime `json:"published_at"`
	}

	t.Run("absent", func(t *testing.T) {
		body.PublishedAt = OptionalTime{}
		require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
		assert.False(t, body.PublishedAt.Set)
		assert.Nil(t, body.PublishedAt.Time)
	})

	t.Run("explicit null", func(t *testing.T) {
		body.PublishedAt = OptionalTime{}
		require.NoError(t, json.Unmarshal([]byte(`{"published_at": null}`), &body))
		assert.True(t, body.PublishedAt.Set)
		assert.Nil(t, body.PublishedAt.Time)
	})

	t.Run("timestamp is normalized to UTC", func(t *testing.T) {
		body.PublishedAt = OptionalTime{}
		require.NoError(t, json.Unmarshal([]byte(`{"published_at": "2026-03-14T17:00:00+05:00"}`), &body))
		require.True(t, body.PublishedAt.Set)
		require.NotNil(t, body.PublishedAt.Time)
		assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), *body.PublishedAt.Time)
		assert.Equal(t, time.UTC, body.PublishedAt.Time.Location())
	})

	t.Run("malformed", func(t *testing.T) {
		body.PublishedAt = OptionalTime{}
		assert.Error(t, json.Unmarshal([]byte(`{"published_at": "yesterday"}`), &body))
	})
}

func TestOptionalTime_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(OptionalTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	ts := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	b, err = json.Marshal(NewOptionalTime(&ts))
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-14T12:00:00Z"`, string(b))
}
