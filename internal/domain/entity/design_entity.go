package entity

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCommentLength is counted in characters after trimming.
const MaxCommentLength = 500

var (
	ErrCommentEmpty   = errors.New("comment text is required")
	ErrCommentTooLong = errors.New("comment text must be at most 500 characters")
)

// Design is a submitted creative work together with its engagement state.
// OwnerID never appears in Likes. Comments are append-only.
type Design struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Category    string
	ImageURL    string
	Likes       IDSet
	Comments    []Comment
	Shares      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwner reports whether userID owns d.
func (d *Design) IsOwner(userID string) bool {
	return d != nil && userID != "" && d.OwnerID == userID
}

// Comment is immutable once appended to a design.
type Comment struct {
	ID        string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}

// NormalizeCommentText trims text and enforces the length bounds.
func NormalizeCommentText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrCommentEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxCommentLength {
		return "", ErrCommentTooLong
	}
	return trimmed, nil
}
