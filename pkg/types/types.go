// Package types defines the core data types for the document search service.
package types

import (
	"fmt"
)

// DocumentStatus is the moderation status a document carries from insertion
// until removal. It never changes in place.
type DocumentStatus uint8

const (
	StatusActual DocumentStatus = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

func (s DocumentStatus) String() string {
	switch s {
	case StatusActual:
		return "actual"
	case StatusIrrelevant:
		return "irrelevant"
	case StatusBanned:
		return "banned"
	case StatusRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// ParseDocumentStatus converts a status name back to its enum value.
func ParseDocumentStatus(name string) (DocumentStatus, error) {
	switch name {
	case "actual":
		return StatusActual, nil
	case "irrelevant":
		return StatusIrrelevant, nil
	case "banned":
		return StatusBanned, nil
	case "removed":
		return StatusRemoved, nil
	}
	return 0, Errorf("types.ParseDocumentStatus", ErrInvalidArg, "unknown status %q", name)
}

// Document is a single ranked search result.
type Document struct {
	ID        int     `json:"id"`
	Relevance float64 `json:"relevance"`
	Rating    int     `json:"rating"`
}

func (d Document) String() string {
	return fmt.Sprintf("{ document_id = %d, relevance = %g, rating = %d }", d.ID, d.Relevance, d.Rating)
}
