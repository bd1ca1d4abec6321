package model

import (
	"fmt"

	"github.com/google/uuid"
)

type (
	FeedID      struct{ uuid.UUID }
	ArticleID   struct{ uuid.UUID }
	SmartFeedID struct{ uuid.UUID }
)

func NewFeedID() FeedID           { return FeedID{UUID: newUUID()} }
func NewArticleID() ArticleID     { return ArticleID{UUID: newUUID()} }
func NewSmartFeedID() SmartFeedID { return SmartFeedID{UUID: newUUID()} }

func ParseFeedID(s string) (FeedID, error) {
	id, err := parseUUID(s)

	return FeedID{UUID: id}, err
}

func ParseArticleID(s string) (ArticleID, error) {
	id, err := parseUUID(s)

	return ArticleID{UUID: id}, err
}

func ParseSmartFeedID(s string) (SmartFeedID, error) {
	id, err := parseUUID(s)

	return SmartFeedID{UUID: id}, err
}

func (id FeedID) IsZero() bool      { return id.UUID == uuid.Nil }
func (id ArticleID) IsZero() bool   { return id.UUID == uuid.Nil }
func (id SmartFeedID) IsZero() bool { return id.UUID == uuid.Nil }

func newUUID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

func parseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	return id, nil
}
