package query_test

import (
	"testing"
	"time"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
	"github.com/stretchr/testify/require"
)

func TestPropertyValidateValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		property    query.Property
		op          query.Operation
		value       string
		expectedErr error
	}{
		{name: "title accepts any text", property: query.ArticleTitleProperty, op: query.StringContains, value: "go"},
		{name: "text does not support equals", property: query.ArticleTextProperty, op: query.StringEquals, value: "go", expectedErr: query.ErrOperationNotSupported},
		{name: "blank value", property: query.ArticleTitleProperty, op: query.StringEquals, value: "  ", expectedErr: query.ErrValueNotSpecified},
		{name: "known date range", property: query.ArticleDateProperty, op: query.DateMatch, value: query.RangeLastWeek},
		{name: "unknown date range", property: query.ArticleDateProperty, op: query.DateAfter, value: "tomorrow", expectedErr: query.ErrUnknownDateRange},
		{name: "starz in range", property: query.FeedStarzProperty, op: query.LongGreater, value: "5"},
		{name: "starz out of range", property: query.FeedStarzProperty, op: query.LongEquals, value: "6", expectedErr: query.ErrValueOutOfRange},
		{name: "starz not a number", property: query.FeedStarzProperty, op: query.LongEquals, value: "three", expectedErr: query.ErrInvalidNumber},
		{name: "unread count negative allowed", property: query.FeedUnreadCountProperty, op: query.LongLess, value: "-1"},
		{name: "status read", property: query.ArticleStatusProperty, op: query.StringEquals, value: query.StatusRead},
		{name: "status unknown", property: query.ArticleStatusProperty, op: query.StringEquals, value: "archived", expectedErr: query.ErrInvalidValue},
		{name: "pinned only supports is", property: query.ArticlePinnedProperty, op: query.StringNotEquals, value: query.FlagSet, expectedErr: query.ErrOperationNotSupported},
		{name: "sentiment neutral", property: query.ArticleSentimentProperty, op: query.StringNotEquals, value: query.SentimentNeutral},
		{name: "nil operation", property: query.ArticleTitleProperty, op: nil, value: "go", expectedErr: query.ErrOperationNotSupported},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.property.ValidateValue(tc.op, tc.value)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestPropertyDefaultsAreValid(t *testing.T) {
	t.Parallel()

	for _, p := range query.Properties() {
		t.Run(p.Descriptor(), func(t *testing.T) {
			t.Parallel()

			require.NotEmpty(t, p.Operations())
			require.NoError(t, p.ValidateValue(p.Operations()[0], p.DefaultValue()))

			resolved, ok := query.PropertyByDescriptor(p.Descriptor())
			require.True(t, ok)
			require.Same(t, p, resolved)
		})
	}
}

func TestPropertyMatch(t *testing.T) {
	t.Parallel()

	article := stubArticle{
		title:     "Generics in Go",
		text:      "Type parameters arrive",
		author:    "Rob",
		tags:      []string{"go", "language"},
		published: time.Now(),
		read:      false,
		pinned:    true,
		sentiment: query.SentimentPositive,
	}
	feed := stubFeed{title: "Go Blog", starz: 4, unread: 12}

	cases := []struct {
		name     string
		property query.Property
		op       query.Operation
		value    string
		target   any
		expected bool
	}{
		{name: "title contains", property: query.ArticleTitleProperty, op: query.StringContains, value: "generics", target: article, expected: true},
		{name: "author is", property: query.ArticleAuthorProperty, op: query.StringEquals, value: "Rob", target: article, expected: true},
		{name: "tagged", property: query.ArticleTagsProperty, op: query.TagContains, value: "language", target: article, expected: true},
		{name: "not tagged", property: query.ArticleTagsProperty, op: query.TagNotContains, value: "rust", target: article, expected: true},
		{name: "published today", property: query.ArticleDateProperty, op: query.DateMatch, value: query.RangeToday, target: article, expected: true},
		{name: "unread", property: query.ArticleStatusProperty, op: query.StringEquals, value: query.StatusUnread, target: article, expected: true},
		{name: "pinned", property: query.ArticlePinnedProperty, op: query.StringEquals, value: query.FlagSet, target: article, expected: true},
		{name: "sentiment is not negative", property: query.ArticleSentimentProperty, op: query.StringNotEquals, value: query.SentimentNegative, target: article, expected: true},
		{name: "feed title", property: query.FeedTitleProperty, op: query.StringEquals, value: "Go Blog", target: feed, expected: true},
		{name: "feed starz", property: query.FeedStarzProperty, op: query.LongGreater, value: "4", target: feed, expected: false},
		{name: "feed unread", property: query.FeedUnreadCountProperty, op: query.LongGreater, value: "10", target: feed, expected: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			matched, err := tc.property.Match(tc.target, tc.op, tc.value)
			require.NoError(t, err)
			require.Equal(t, tc.expected, matched)
		})
	}
}

func TestPropertyMatchRejectsWrongTarget(t *testing.T) {
	t.Parallel()

	_, err := query.FeedTitleProperty.Match(stubArticle{}, query.StringEquals, "x")
	require.ErrorIs(t, err, query.ErrUnsupportedTarget)

	_, err = query.ArticleTitleProperty.Match(stubFeed{}, query.StringEquals, "x")
	require.ErrorIs(t, err, query.ErrUnsupportedTarget)
}

func TestPropertyMatchRejectsMissingOrUnsupportedOperation(t *testing.T) {
	t.Parallel()

	article := stubArticle{title: "Go"}

	_, err := query.ArticleTitleProperty.Match(article, nil, "Go")
	require.ErrorIs(t, err, query.ErrOperationNotSpecified)

	_, err = query.ArticleTitleProperty.Match(article, query.LongGreater, "1")
	require.ErrorIs(t, err, query.ErrOperationNotSupported)
}

func TestPropertyMatchAtUsesGivenTime(t *testing.T) {
	t.Parallel()

	published := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.Local)
	article := stubArticle{published: published}

	matched, err := query.ArticleDateProperty.MatchAt(article, query.DateMatch, query.RangeToday, published.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, matched)

	matched, err = query.ArticleDateProperty.MatchAt(article, query.DateMatch, query.RangeToday, published.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.False(t, matched)

	matched, err = query.ArticleDateProperty.MatchAt(article, query.DateMatch, query.RangeYesterday, published.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.True(t, matched)
}

func TestValueTypeString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "date", query.TypeDate.String())
	require.Equal(t, "unknown", query.ValueType(99).String())
}
