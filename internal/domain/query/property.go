package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

type ValueType int

const (
	TypeString ValueType = iota
	TypeLong
	TypeDate
	TypeStarz
	TypeStatus
	TypeSentiment
	TypeFlag
)

var valueTypeNames = map[ValueType]string{
	TypeString:    "string",
	TypeLong:      "long",
	TypeDate:      "date",
	TypeStarz:     "starz",
	TypeStatus:    "status",
	TypeSentiment: "sentiment",
	TypeFlag:      "flag",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}

	return "unknown"
}

const (
	StatusRead   = "read"
	StatusUnread = "unread"

	FlagSet   = "set"
	FlagUnset = "unset"

	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	MinStarz = 1
	MaxStarz = 5
)

// Property describes one attribute of a target that criteria can test.
type Property interface {
	Name() string
	Descriptor() string
	Type() ValueType
	DefaultValue() string
	Operations() []Operation
	OperationByDescriptor(descriptor string) (Operation, bool)
	Supports(op Operation) bool
	ValidateValue(op Operation, value string) error
	Match(target any, op Operation, value string) (bool, error)
	MatchAt(target any, op Operation, value string, now time.Time) (bool, error)
}

type (
	extractFunc  func(target any) (string, error)
	validateFunc func(value string) error

	property struct {
		name         string
		descriptor   string
		valueType    ValueType
		defaultValue string
		operations   []Operation
		extract      extractFunc
	}
)

func (p *property) Name() string            { return p.name }
func (p *property) Descriptor() string      { return p.descriptor }
func (p *property) Type() ValueType         { return p.valueType }
func (p *property) DefaultValue() string    { return p.defaultValue }
func (p *property) Operations() []Operation { return slices.Clone(p.operations) }
func (p *property) String() string          { return p.descriptor }

func (p *property) OperationByDescriptor(descriptor string) (Operation, bool) {
	for _, op := range p.operations {
		if op.Descriptor() == descriptor {
			return op, true
		}
	}

	return nil, false
}

func (p *property) Supports(op Operation) bool {
	return op != nil && slices.Contains(p.operations, op)
}

func (p *property) ValidateValue(op Operation, value string) error {
	if !p.Supports(op) {
		return ErrOperationNotSupported
	}

	if strings.TrimSpace(value) == "" {
		return ErrValueNotSpecified
	}

	return validators[p.valueType](value)
}

func (p *property) Match(target any, op Operation, value string) (bool, error) {
	return p.MatchAt(target, op, value, time.Now())
}

func (p *property) MatchAt(target any, op Operation, value string, now time.Time) (bool, error) {
	switch {
	case op == nil:
		return false, ErrOperationNotSpecified
	case !p.Supports(op):
		return false, ErrOperationNotSupported
	}

	actual, err := p.extract(target)
	if err != nil {
		return false, err
	}

	return op.MatchAt(actual, value, now)
}

var validators = map[ValueType]validateFunc{
	TypeString:    func(string) error { return nil },
	TypeLong:      validateLong,
	TypeDate:      validateDateRange,
	TypeStarz:     validateStarz,
	TypeStatus:    oneOf(StatusRead, StatusUnread),
	TypeSentiment: oneOf(SentimentPositive, SentimentNegative, SentimentNeutral),
	TypeFlag:      oneOf(FlagSet, FlagUnset),
}

func validateLong(value string) error {
	_, err := parseLong(value)

	return err
}

func validateStarz(value string) error {
	n, err := parseLong(value)
	if err != nil {
		return err
	}

	if n < MinStarz || n > MaxStarz {
		return fmt.Errorf("%w: %d not in %d..%d", ErrValueOutOfRange, n, MinStarz, MaxStarz)
	}

	return nil
}

func validateDateRange(value string) error {
	if _, ok := rangeBounds[value]; !ok {
		return fmt.Errorf("%w: %q, expected one of %s", ErrUnknownDateRange, value, strings.Join(DateRangeNames(), ", "))
	}

	return nil
}

func oneOf(allowed ...string) validateFunc {
	return func(value string) error {
		if !slices.Contains(allowed, value) {
			return fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}

		return nil
	}
}

func formatBool(b bool, yes, no string) string {
	if b {
		return yes
	}

	return no
}

func articleValue(read func(ArticleTarget) string) extractFunc {
	return func(target any) (string, error) {
		article, ok := target.(ArticleTarget)
		if !ok {
			return "", fmt.Errorf("%w: %T is not an article", ErrUnsupportedTarget, target)
		}

		return read(article), nil
	}
}

func feedValue(read func(FeedTarget) string) extractFunc {
	return func(target any) (string, error) {
		feed, ok := target.(FeedTarget)
		if !ok {
			return "", fmt.Errorf("%w: %T is not a feed", ErrUnsupportedTarget, target)
		}

		return read(feed), nil
	}
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}
