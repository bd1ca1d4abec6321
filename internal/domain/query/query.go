package query

import (
	"fmt"
	"time"
)

// Query combines criteria with AND or OR. The order of criteria only
// matters for display.
type Query struct {
	criteria []*Criteria
	and      bool
}

// New returns an empty AND query.
func New() *Query {
	return &Query{and: true}
}

func (q *Query) IsAnd() bool      { return q.and }
func (q *Query) SetAnd(and bool)  { q.and = and }
func (q *Query) Len() int         { return len(q.criteria) }
func (q *Query) IsEmpty() bool    { return len(q.criteria) == 0 }
func (q *Query) All() []*Criteria { return append([]*Criteria(nil), q.criteria...) }
func (q *Query) String() string   { return Serialize(q) }
func (q *Query) Clone() *Query    { return q.cloneWith(q.and) }

// AddCriteria appends an empty criteria and returns it for editing.
func (q *Query) AddCriteria() *Criteria {
	c := &Criteria{}
	q.criteria = append(q.criteria, c)

	return c
}

// Add appends a fully specified criteria.
func (q *Query) Add(property Property, operation Operation, value string) *Query {
	q.criteria = append(q.criteria, NewCriteria(property, operation, value))

	return q
}

func (q *Query) Criteria(index int) (*Criteria, error) {
	if index < 0 || index >= len(q.criteria) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	return q.criteria[index], nil
}

func (q *Query) RemoveCriteria(index int) error {
	if index < 0 || index >= len(q.criteria) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	q.criteria = append(q.criteria[:index], q.criteria[index+1:]...)

	return nil
}

// Validate returns the first criteria error, annotated with its index.
func (q *Query) Validate() error {
	for index, c := range q.criteria {
		if err := c.Validate(); err != nil {
			return &CriteriaError{Index: index, Err: err}
		}
	}

	return nil
}

// Match evaluates the query against target. An empty AND query matches
// everything and an empty OR query matches nothing.
func (q *Query) Match(target any) (bool, error) {
	return q.MatchAt(target, time.Now())
}

// MatchAt is Match with date ranges resolved relative to now.
func (q *Query) MatchAt(target any, now time.Time) (bool, error) {
	for index, c := range q.criteria {
		matched, err := c.MatchAt(target, now)
		if err != nil {
			return false, &CriteriaError{Index: index, Err: err}
		}

		if q.and && !matched {
			return false, nil
		}

		if !q.and && matched {
			return true, nil
		}
	}

	return q.and, nil
}

func (q *Query) Equal(other *Query) bool {
	if q == nil || other == nil {
		return q == other
	}

	if q.and != other.and || len(q.criteria) != len(other.criteria) {
		return false
	}

	for index := range q.criteria {
		if !q.criteria[index].Equal(other.criteria[index]) {
			return false
		}
	}

	return true
}

func (q *Query) cloneWith(and bool) *Query {
	cloned := &Query{and: and, criteria: make([]*Criteria, 0, len(q.criteria))}
	for _, c := range q.criteria {
		cloned.criteria = append(cloned.criteria, c.clone())
	}

	return cloned
}

// CriteriaError ties a criteria failure to its position in the query.
type CriteriaError struct {
	Index int
	Err   error
}

func (e *CriteriaError) Error() string {
	return fmt.Sprintf("criteria %d: %v", e.Index, e.Err)
}

func (e *CriteriaError) Unwrap() error {
	return e.Err
}
