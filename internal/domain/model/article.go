package model

import (
	"time"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
)

type Sentiment string

const (
	SentimentPositive Sentiment = query.SentimentPositive
	SentimentNegative Sentiment = query.SentimentNegative
	SentimentNeutral  Sentiment = query.SentimentNeutral
)

func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return Sentiment(s), nil
	case "":
		return SentimentNeutral, nil
	default:
		return "", ErrInvalidSentiment
	}
}

func (s Sentiment) String() string { return string(s) }

type Article struct {
	ID          ArticleID
	FeedID      FeedID
	Feed        *Feed
	Title       string
	Text        string
	Author      string
	Link        string
	Tags        []string
	PublishedAt time.Time
	Read        bool
	Pinned      bool
	Sentiment   Sentiment
}

func (a *Article) ArticleTitle() string        { return a.Title }
func (a *Article) ArticleText() string         { return a.Text }
func (a *Article) ArticleAuthor() string       { return a.Author }
func (a *Article) ArticleTags() []string       { return a.Tags }
func (a *Article) ArticlePublished() time.Time { return a.PublishedAt }
func (a *Article) ArticleRead() bool           { return a.Read }
func (a *Article) ArticlePinned() bool         { return a.Pinned }
func (a *Article) ArticleSentiment() string    { return a.Sentiment.String() }

// Feed accessors fall back to zero values for articles loaded without
// their feed.

func (a *Article) FeedTitle() string {
	if a.Feed == nil {
		return ""
	}

	return a.Feed.Title
}

func (a *Article) FeedStarz() int {
	if a.Feed == nil {
		return 0
	}

	return a.Feed.Starz
}

func (a *Article) FeedUnreadCount() int {
	if a.Feed == nil {
		return 0
	}

	return a.Feed.UnreadCount
}

const (
	DefaultPage     uint = 1
	DefaultPageSize uint = 20
	MaxPageSize     uint = 100
)

type PageRequest struct {
	Page uint
	Size uint
}

// Normalize applies defaults and caps the page size.
func (p PageRequest) Normalize() PageRequest {
	if p.Page == 0 {
		p.Page = DefaultPage
	}

	if p.Size == 0 {
		p.Size = DefaultPageSize
	}

	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}

	return p
}

func (p PageRequest) Offset() uint {
	return (p.Page - 1) * p.Size
}

type Pagination struct {
	Page        uint `json:"page"`
	Size        uint `json:"size"`
	TotalItems  uint `json:"totalItems"`
	TotalPages  uint `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

func NewPagination(page PageRequest, totalItems uint) Pagination {
	totalPages := totalItems / page.Size
	if totalItems%page.Size != 0 {
		totalPages++
	}

	return Pagination{
		Page:        page.Page,
		Size:        page.Size,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     page.Page < totalPages,
		HasPrevious: page.Page > 1,
	}
}

type ArticleList struct {
	Articles   []*Article
	Pagination Pagination
}
