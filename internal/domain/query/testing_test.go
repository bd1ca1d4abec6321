package query_test

import "time"

type stubArticle struct {
	title     string
	text      string
	author    string
	tags      []string
	published time.Time
	read      bool
	pinned    bool
	sentiment string
}

func (a stubArticle) ArticleTitle() string        { return a.title }
func (a stubArticle) ArticleText() string         { return a.text }
func (a stubArticle) ArticleAuthor() string       { return a.author }
func (a stubArticle) ArticleTags() []string       { return a.tags }
func (a stubArticle) ArticlePublished() time.Time { return a.published }
func (a stubArticle) ArticleRead() bool           { return a.read }
func (a stubArticle) ArticlePinned() bool         { return a.pinned }
func (a stubArticle) ArticleSentiment() string    { return a.sentiment }

type stubFeed struct {
	title  string
	starz  int
	unread int
}

func (f stubFeed) FeedTitle() string    { return f.title }
func (f stubFeed) FeedStarz() int       { return f.starz }
func (f stubFeed) FeedUnreadCount() int { return f.unread }
