package query_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
	"github.com/stretchr/testify/require"
)

func TestStringContains(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		target   string
		value    string
		expected bool
	}{
		{name: "single token", target: "Go release notes", value: "release", expected: true},
		{name: "case insensitive", target: "Go Release Notes", value: "rELEASE", expected: true},
		{name: "all tokens present", target: "alpha beta", value: "alpha beta", expected: true},
		{name: "one token missing", target: "alpha", value: "alpha beta", expected: false},
		{name: "tokens in any order", target: "beta then alpha", value: "alpha beta", expected: true},
		{name: "quoted phrase kept whole", target: "beta alpha", value: `"alpha beta"`, expected: false},
		{name: "quoted phrase present", target: "x alpha beta y", value: `"alpha beta"`, expected: true},
		{name: "substring match", target: "kubernetes", value: "netes", expected: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			matched, err := query.StringContains.Match(tc.target, tc.value)
			require.NoError(t, err)
			require.Equal(t, tc.expected, matched)
		})
	}
}

func TestNegatedOperationsAreComplements(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		positive query.Operation
		negative query.Operation
		target   string
		value    string
	}{
		{name: "equals", positive: query.StringEquals, negative: query.StringNotEquals, target: "abc", value: "abc"},
		{name: "equals differs", positive: query.StringEquals, negative: query.StringNotEquals, target: "abc", value: "abd"},
		{name: "contains", positive: query.StringContains, negative: query.StringNotContains, target: "alpha beta", value: "beta"},
		{name: "contains missing", positive: query.StringContains, negative: query.StringNotContains, target: "alpha", value: "gamma"},
		{name: "tagged", positive: query.TagContains, negative: query.TagNotContains, target: "go news", value: "go"},
		{name: "not tagged", positive: query.TagContains, negative: query.TagNotContains, target: "go news", value: "rust"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			positive, err := tc.positive.Match(tc.target, tc.value)
			require.NoError(t, err)

			negative, err := tc.negative.Match(tc.target, tc.value)
			require.NoError(t, err)

			require.NotEqual(t, positive, negative)
		})
	}
}

func TestNegatedOperationPropagatesErrors(t *testing.T) {
	t.Parallel()

	negated := query.Not(query.LongEquals, "not equals", "not-equals")

	_, err := negated.Match("abc", "1")
	require.ErrorIs(t, err, query.ErrInvalidNumber)
}

func TestTagContains(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		target   string
		value    string
		expected bool
	}{
		{name: "exact tag", target: "go databases", value: "go", expected: true},
		{name: "partial tag does not match", target: "golang", value: "go", expected: false},
		{name: "every token must be a tag", target: "go databases", value: "go databases", expected: true},
		{name: "missing tag", target: "go", value: "go databases", expected: false},
		{name: "case insensitive", target: "Go", value: "go", expected: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			matched, err := query.TagContains.Match(tc.target, tc.value)
			require.NoError(t, err)
			require.Equal(t, tc.expected, matched)
		})
	}
}

func TestNumericOperations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		op          query.Operation
		target      string
		value       string
		expected    bool
		expectedErr error
	}{
		{name: "equals", op: query.LongEquals, target: "3", value: "3", expected: true},
		{name: "greater", op: query.LongGreater, target: "4", value: "3", expected: true},
		{name: "not greater", op: query.LongGreater, target: "3", value: "3", expected: false},
		{name: "less", op: query.LongLess, target: "-1", value: "0", expected: true},
		{name: "bad target", op: query.LongEquals, target: "x", value: "1", expectedErr: query.ErrInvalidNumber},
		{name: "bad value", op: query.LongLess, target: "1", value: "1.5", expectedErr: query.ErrInvalidNumber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			matched, err := tc.op.Match(tc.target, tc.value)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, matched)
		})
	}
}

func TestDateOperations(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 23, 59, 0, 0, time.Local)
	millis := func(t time.Time) string { return strconv.FormatInt(t.UnixMilli(), 10) }
	threeDaysAgo := now.AddDate(0, 0, -3)
	tomorrow := now.AddDate(0, 0, 2)

	cases := []struct {
		name     string
		op       query.Operation
		target   string
		value    string
		expected bool
	}{
		{name: "now within today", op: query.DateMatch, target: millis(now), value: query.RangeToday, expected: true},
		{name: "three days ago not today", op: query.DateMatch, target: millis(threeDaysAgo), value: query.RangeToday, expected: false},
		{name: "three days ago within last week", op: query.DateMatch, target: millis(threeDaysAgo), value: query.RangeLastWeek, expected: true},
		{name: "three days ago before yesterday", op: query.DateBefore, target: millis(threeDaysAgo), value: query.RangeYesterday, expected: true},
		{name: "future after today", op: query.DateAfter, target: millis(tomorrow), value: query.RangeToday, expected: true},
		{name: "now not after today", op: query.DateAfter, target: millis(now), value: query.RangeToday, expected: false},
		{name: "two minutes later is tomorrow", op: query.DateAfter, target: millis(now.Add(2 * time.Minute)), value: query.RangeToday, expected: true},
		{name: "negated within", op: query.Not(query.DateMatch, "outside", "outside"), target: millis(threeDaysAgo), value: query.RangeToday, expected: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			matched, err := tc.op.MatchAt(tc.target, tc.value, now)
			require.NoError(t, err)
			require.Equal(t, tc.expected, matched)
		})
	}
}

func TestDateOperationRejectsUnknownRange(t *testing.T) {
	t.Parallel()

	_, err := query.DateMatch.Match("0", "lastCentury")
	require.ErrorIs(t, err, query.ErrUnknownDateRange)
}

func TestDateRangeByName(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)
	midnight := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name          string
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{name: query.RangeToday, expectedStart: midnight, expectedEnd: midnight.AddDate(0, 0, 1)},
		{name: query.RangeYesterday, expectedStart: midnight.AddDate(0, 0, -1), expectedEnd: midnight},
		{name: query.RangeLastWeek, expectedStart: midnight.AddDate(0, 0, -7), expectedEnd: midnight.AddDate(0, 0, 1)},
		{name: query.RangeTwoWeeksAgo, expectedStart: midnight.AddDate(0, 0, -14), expectedEnd: midnight.AddDate(0, 0, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, ok := query.DateRangeByName(tc.name, now)
			require.True(t, ok)
			require.Equal(t, tc.expectedStart, r.Start)
			require.Equal(t, tc.expectedEnd, r.End)
			require.True(t, r.Contains(r.Start))
			require.False(t, r.Contains(r.End))
			require.True(t, r.IsAfter(r.End))
			require.True(t, r.IsBefore(r.Start.Add(-time.Millisecond)))
		})
	}

	_, ok := query.DateRangeByName("someday", now)
	require.False(t, ok)
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "empty", value: "", expected: nil},
		{name: "whitespace", value: " a \tb\n", expected: []string{"a", "b"}},
		{name: "quoted", value: `x "a b" y`, expected: []string{"x", "a b", "y"}},
		{name: "unterminated quote", value: `x "a b`, expected: []string{"x", "a b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, query.Tokenize(tc.value))
		})
	}
}

func TestOperationByDescriptor(t *testing.T) {
	t.Parallel()

	for _, op := range query.Operations() {
		resolved, ok := query.OperationByDescriptor(op.Descriptor())
		require.True(t, ok, op.Descriptor())
		require.Same(t, op, resolved)
	}

	_, ok := query.OperationByDescriptor("matches-regex")
	require.False(t, ok)
}
