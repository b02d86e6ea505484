package domain

import (
	"strings"
	"time"
)

// Listing represents a job posting owned by a user.
type Listing struct {
	ID          int64
	UserID      int64
	Title       string
	Company     string
	Location    string
	Website     string
	Email       string
	Tags        string
	Description string
	Logo        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TagList splits the comma separated tags field into trimmed entries.
func (l Listing) TagList() []string {
	var tags []string
	for _, t := range strings.Split(l.Tags, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
