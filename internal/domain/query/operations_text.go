package query

import (
	"strings"
	"unicode"
)

func matchStringEquals(target, value string) (bool, error) {
	return target == value, nil
}

// matchStringContains requires every search token to occur in the target.
func matchStringContains(target, value string) (bool, error) {
	haystack := strings.ToLower(target)

	for _, token := range Tokenize(value) {
		if !strings.Contains(haystack, strings.ToLower(token)) {
			return false, nil
		}
	}

	return true, nil
}

// matchTagContains requires every search token to equal one of the
// whitespace separated target tags.
func matchTagContains(target, value string) (bool, error) {
	tags := make(map[string]struct{})
	for _, tag := range strings.Fields(target) {
		tags[strings.ToLower(tag)] = struct{}{}
	}

	for _, token := range Tokenize(value) {
		if _, ok := tags[strings.ToLower(token)]; !ok {
			return false, nil
		}
	}

	return true, nil
}

// Tokenize splits a search value on whitespace. A double-quoted run is kept
// as a single token without its quotes; an unterminated quote runs to the
// end of the input.
func Tokenize(value string) []string {
	var (
		tokens   []string
		current  strings.Builder
		inQuotes bool
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range value {
		switch {
		case r == '"':
			flush()
			inQuotes = !inQuotes
		case unicode.IsSpace(r) && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}

	flush()

	return tokens
}
