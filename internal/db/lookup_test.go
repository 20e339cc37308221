package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstExisting(t *testing.T) {
	cols := map[string]struct{}{
		"id":       {},
		"raw_text": {},
	}

	assert.Equal(t, "raw_text", firstExisting(cols, []string{"description", "raw_text", "text"}))
	assert.Equal(t, "id", firstExisting(cols, []string{"id", "job_id"}))
	assert.Equal(t, "", firstExisting(cols, []string{"content", "resume_text"}))
	assert.Equal(t, "", firstExisting(nil, []string{"id"}))
}

func TestFetchText_NilSource(t *testing.T) {
	db := &DB{}
	assert.Equal(t, "", db.fetchText(context.Background(), nil, 1))
}
