package query

import (
	"fmt"
	"strings"
)

const (
	andFlag           = '&'
	orFlag            = '|'
	criteriaSeparator = ';'
	fieldSeparator    = ':'
	escapeChar        = '\\'
)

// EscapeValue protects the separator and escape characters inside a value.
// Colons stay literal because only the first two colons of a criteria are
// field separators.
func EscapeValue(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for i := 0; i < len(value); i++ {
		if value[i] == escapeChar || value[i] == criteriaSeparator {
			b.WriteByte(escapeChar)
		}

		b.WriteByte(value[i])
	}

	return b.String()
}

// UnescapeValue reverses EscapeValue. Any escaped byte is taken literally;
// a trailing lone backslash is kept. Values are handled bytewise so text
// that is not valid UTF-8 survives a round trip.
func UnescapeValue(value string) string {
	if strings.IndexByte(value, escapeChar) < 0 {
		return value
	}

	var b strings.Builder
	b.Grow(len(value))

	escaped := false
	for i := 0; i < len(value); i++ {
		if !escaped && value[i] == escapeChar {
			escaped = true

			continue
		}

		escaped = false
		b.WriteByte(value[i])
	}

	if escaped {
		b.WriteByte(escapeChar)
	}

	return b.String()
}

// Serialize renders q as flag followed by ';'-separated
// "property:operation:value" criteria.
func Serialize(q *Query) string {
	var b strings.Builder

	if q.and {
		b.WriteByte(andFlag)
	} else {
		b.WriteByte(orFlag)
	}

	for index, c := range q.criteria {
		if index > 0 {
			b.WriteByte(criteriaSeparator)
		}

		if c.property != nil {
			b.WriteString(c.property.Descriptor())
		}

		b.WriteByte(fieldSeparator)

		if c.operation != nil {
			b.WriteString(c.operation.Descriptor())
		}

		b.WriteByte(fieldSeparator)
		b.WriteString(EscapeValue(c.value))
	}

	return b.String()
}

// Parse restores a query written by Serialize. Strings without a leading
// mode flag are read as AND queries. Unknown descriptors leave the matching
// field unset so the query still loads and fails validation instead.
func Parse(s string) (*Query, error) {
	q := New()

	if s == "" {
		return q, nil
	}

	switch s[0] {
	case andFlag:
		s = s[1:]
	case orFlag:
		q.and = false
		s = s[1:]
	}

	if s == "" {
		return q, nil
	}

	for index, raw := range splitCriteria(s) {
		c, err := parseCriteria(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: criteria %d: %v", ErrMalformedQuery, index, err)
		}

		q.criteria = append(q.criteria, c)
	}

	return q, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) *Query {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return q
}

// splitCriteria splits on unescaped criteria separators, leaving escapes
// in place for UnescapeValue.
func splitCriteria(s string) []string {
	var (
		parts   []string
		current strings.Builder
		escaped bool
	)

	for i := 0; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == escapeChar:
			escaped = true
		case s[i] == criteriaSeparator:
			parts = append(parts, current.String())
			current.Reset()

			continue
		}

		current.WriteByte(s[i])
	}

	return append(parts, current.String())
}

func parseCriteria(raw string) (*Criteria, error) {
	fields := strings.SplitN(raw, string(fieldSeparator), 3)
	if len(fields) != 3 {
		return nil, fmt.Errorf("expected property:operation:value, got %q", raw)
	}

	c := &Criteria{value: UnescapeValue(fields[2])}

	if p, ok := PropertyByDescriptor(fields[0]); ok {
		c.property = p
	}

	if op, ok := OperationByDescriptor(fields[1]); ok {
		c.operation = op
	}

	return c, nil
}
