package model

import (
	"strings"
	"time"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
)

// SmartFeed is a saved query whose matching articles form a virtual feed.
type SmartFeed struct {
	ID        SmartFeedID
	Title     string
	Query     *query.Query
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSmartFeed(id SmartFeedID, title string, q *query.Query) (*SmartFeed, error) {
	now := time.Now().UTC()

	feed := &SmartFeed{
		ID:        id,
		Title:     strings.TrimSpace(title),
		Query:     q,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := feed.Validate(); err != nil {
		return nil, err
	}

	return feed, nil
}

// Validate checks the title and every criteria of the query.
func (f *SmartFeed) Validate() error {
	errs := NewValidationErrors()

	if f.Title == "" {
		errs.Add("title", "title is required", "required")
	}

	if f.Query == nil || f.Query.IsEmpty() {
		errs.Add("query", "query must have at least one criteria", "required")
	} else if err := f.Query.Validate(); err != nil {
		errs.Add("query", err.Error(), "invalid")
	}

	if errs.HasErrors() {
		return errs
	}

	return nil
}

func (f *SmartFeed) Rename(title string) {
	f.Title = strings.TrimSpace(title)
	f.UpdatedAt = time.Now().UTC()
}

func (f *SmartFeed) ReplaceQuery(q *query.Query) {
	f.Query = q
	f.UpdatedAt = time.Now().UTC()
}

// SmartFeedView is a smart feed with its current match count.
type SmartFeedView struct {
	SmartFeed  *SmartFeed
	MatchCount int
}
