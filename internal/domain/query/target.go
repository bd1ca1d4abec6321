package query

import "time"

type (
	// ArticleTarget is implemented by anything that can be matched with
	// article properties.
	ArticleTarget interface {
		ArticleTitle() string
		ArticleText() string
		ArticleAuthor() string
		ArticleTags() []string
		ArticlePublished() time.Time
		ArticleRead() bool
		ArticlePinned() bool
		ArticleSentiment() string
	}

	// FeedTarget is implemented by anything that can be matched with feed
	// properties. Articles expose their owning feed through it too.
	FeedTarget interface {
		FeedTitle() string
		FeedStarz() int
		FeedUnreadCount() int
	}
)
