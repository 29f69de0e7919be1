package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStatus_String(t *testing.T) {
	tests := []struct {
		status DocumentStatus
		want   string
	}{
		{StatusActual, "actual"},
		{StatusIrrelevant, "irrelevant"},
		{StatusBanned, "banned"},
		{StatusRemoved, "removed"},
		{DocumentStatus(42), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestParseDocumentStatus(t *testing.T) {
	for _, status := range []DocumentStatus{StatusActual, StatusIrrelevant, StatusBanned, StatusRemoved} {
		parsed, err := ParseDocumentStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseDocumentStatus("archived")
	assert.True(t, errors.Is(err, ErrInvalidArg))
}

func TestDocument_String(t *testing.T) {
	doc := Document{ID: 42, Relevance: 0.5, Rating: 3}
	assert.Equal(t, "{ document_id = 42, relevance = 0.5, rating = 3 }", doc.String())
}
