package model

type Feed struct {
	ID          FeedID
	Title       string
	URL         string
	Starz       int
	UnreadCount int
}

func (f *Feed) FeedTitle() string    { return f.Title }
func (f *Feed) FeedStarz() int       { return f.Starz }
func (f *Feed) FeedUnreadCount() int { return f.UnreadCount }
