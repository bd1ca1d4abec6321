package query

import "time"

// Operation is a named binary predicate over a string-encoded target value
// and a string-encoded comparison value. Implementations are stateless and
// never modify their inputs. MatchAt resolves synthetic date ranges against
// now; Match uses the current time.
type Operation interface {
	Name() string
	Descriptor() string
	Match(target, value string) (bool, error)
	MatchAt(target, value string, now time.Time) (bool, error)
}

type matchFunc func(target, value string, now time.Time) (bool, error)

// timeless adapts a matcher that does not depend on the current time.
func timeless(match func(target, value string) (bool, error)) matchFunc {
	return func(target, value string, _ time.Time) (bool, error) {
		return match(target, value)
	}
}

type operation struct {
	name       string
	descriptor string
	match      matchFunc
}

func newOperation(name, descriptor string, match matchFunc) Operation {
	return &operation{name: name, descriptor: descriptor, match: match}
}

func (o *operation) Name() string       { return o.name }
func (o *operation) Descriptor() string { return o.descriptor }

func (o *operation) Match(target, value string) (bool, error) {
	return o.match(target, value, time.Now())
}

func (o *operation) MatchAt(target, value string, now time.Time) (bool, error) {
	return o.match(target, value, now)
}

func (o *operation) String() string { return o.descriptor }

type negatedOperation struct {
	inner      Operation
	name       string
	descriptor string
}

// Not returns an operation matching exactly when inner does not. Errors
// from inner are passed through unchanged.
func Not(inner Operation, name, descriptor string) Operation {
	return &negatedOperation{inner: inner, name: name, descriptor: descriptor}
}

func (o *negatedOperation) Name() string       { return o.name }
func (o *negatedOperation) Descriptor() string { return o.descriptor }
func (o *negatedOperation) Inner() Operation   { return o.inner }

func (o *negatedOperation) Match(target, value string) (bool, error) {
	return o.MatchAt(target, value, time.Now())
}

func (o *negatedOperation) MatchAt(target, value string, now time.Time) (bool, error) {
	matched, err := o.inner.MatchAt(target, value, now)
	if err != nil {
		return false, err
	}

	return !matched, nil
}

func (o *negatedOperation) String() string { return o.descriptor }

var (
	StringEquals      = newOperation("is", "is", timeless(matchStringEquals))
	StringNotEquals   = Not(StringEquals, "is not", "is-not")
	StringContains    = newOperation("contains", "contains", timeless(matchStringContains))
	StringNotContains = Not(StringContains, "does not contain", "does-not-contain")
	TagContains       = newOperation("tagged with", "tagged", timeless(matchTagContains))
	TagNotContains    = Not(TagContains, "not tagged with", "not-tagged")
	LongEquals        = newOperation("equals", "equals", timeless(matchLongEquals))
	LongGreater       = newOperation("greater than", "greater", timeless(matchLongGreater))
	LongLess          = newOperation("less than", "less", timeless(matchLongLess))
	DateAfter         = newOperation("after", "after", matchDateAfter)
	DateBefore        = newOperation("before", "before", matchDateBefore)
	DateMatch         = newOperation("within", "within", matchDateWithin)
)

var (
	operations = []Operation{
		StringEquals, StringNotEquals,
		StringContains, StringNotContains,
		TagContains, TagNotContains,
		LongEquals, LongGreater, LongLess,
		DateAfter, DateBefore, DateMatch,
	}

	operationsByDescriptor = indexOperations(operations)
)

func indexOperations(ops []Operation) map[string]Operation {
	index := make(map[string]Operation, len(ops))
	for _, op := range ops {
		index[op.Descriptor()] = op
	}

	return index
}

// Operations returns every registered operation in registration order.
func Operations() []Operation {
	result := make([]Operation, len(operations))
	copy(result, operations)

	return result
}

// OperationByDescriptor resolves a persisted descriptor.
func OperationByDescriptor(descriptor string) (Operation, bool) {
	op, ok := operationsByDescriptor[descriptor]

	return op, ok
}
