package query_test

import (
	"testing"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
	"github.com/stretchr/testify/require"
)

func TestEscapeValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "plain", value: "go news", expected: "go news"},
		{name: "separators", value: `a;b:c\`, expected: `a\;b:c\\`},
		{name: "empty", value: "", expected: ""},
		{name: "invalid utf-8", value: "caf\xe9;x", expected: "caf\xe9\\;x"},
		{name: "multibyte", value: "naïve;ü", expected: "naïve\\;ü"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			escaped := query.EscapeValue(tc.value)
			require.Equal(t, tc.expected, escaped)
			require.Equal(t, tc.value, query.UnescapeValue(escaped))
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		and  bool
	}{
		{name: "and", and: true},
		{name: "or", and: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q := query.New().
				Add(query.ArticleDateProperty, query.DateMatch, query.RangeToday).
				Add(query.FeedTitleProperty, query.StringEquals, `a;b:c/d\e`)
			q.SetAnd(tc.and)

			restored, err := query.Parse(query.Serialize(q))
			require.NoError(t, err)
			require.True(t, q.Equal(restored))
			require.Equal(t, tc.and, restored.IsAnd())
			require.NoError(t, restored.Validate())
		})
	}
}

func TestSerializeRoundTripKeepsInvalidUTF8(t *testing.T) {
	t.Parallel()

	q := query.New().
		Add(query.ArticleTitleProperty, query.StringEquals, "caf\xe9").
		Add(query.ArticleAuthorProperty, query.StringContains, "\xff;\xfe\\")

	restored, err := query.Parse(q.String())
	require.NoError(t, err)
	require.True(t, q.Equal(restored))

	first, err := restored.Criteria(0)
	require.NoError(t, err)
	require.Equal(t, "caf\xe9", first.Value())
}

func TestSerializeFormat(t *testing.T) {
	t.Parallel()

	q := query.New().
		Add(query.ArticleTitleProperty, query.StringContains, "go;rust").
		Add(query.FeedStarzProperty, query.LongGreater, "3")

	require.Equal(t, `&articleTitle:contains:go\;rust;feedStarz:greater:3`, q.String())
}

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		input         string
		expectedAnd   bool
		expectedLen   int
		expectedError error
	}{
		{name: "empty string", input: "", expectedAnd: true, expectedLen: 0},
		{name: "flag only", input: "|", expectedAnd: false, expectedLen: 0},
		{name: "no flag reads as and", input: "articleTitle:is:Go", expectedAnd: true, expectedLen: 1},
		{name: "value with colons", input: "&feedTitle:is:http://example.com", expectedAnd: true, expectedLen: 1},
		{name: "missing fields", input: "&articleTitle", expectedError: query.ErrMalformedQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q, err := query.Parse(tc.input)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expectedAnd, q.IsAnd())
			require.Equal(t, tc.expectedLen, q.Len())
		})
	}
}

func TestParseUnknownDescriptors(t *testing.T) {
	t.Parallel()

	q, err := query.Parse("&articleMood:is:happy;articleTitle:resembles:go")
	require.NoError(t, err)
	require.Equal(t, 2, q.Len())

	first, err := q.Criteria(0)
	require.NoError(t, err)
	require.Nil(t, first.Property())
	require.Equal(t, query.StringEquals, first.Operation())

	second, err := q.Criteria(1)
	require.NoError(t, err)
	require.Equal(t, query.ArticleTitleProperty, second.Property())
	require.Nil(t, second.Operation())

	require.ErrorIs(t, q.Validate(), query.ErrPropertyNotSpecified)
}

func TestMustParsePanicsOnMalformedInput(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { query.MustParse("&broken") })
	require.NotPanics(t, func() { query.MustParse("&articleTitle:is:Go") })
}
