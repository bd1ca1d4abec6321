package query

import "time"

// Criteria is a single (property, operation, value) test. Fields are set
// independently; consistency is only checked by Validate.
type Criteria struct {
	property  Property
	operation Operation
	value     string
}

func NewCriteria(property Property, operation Operation, value string) *Criteria {
	return &Criteria{property: property, operation: operation, value: value}
}

func (c *Criteria) Property() Property   { return c.property }
func (c *Criteria) Operation() Operation { return c.operation }
func (c *Criteria) Value() string        { return c.value }

func (c *Criteria) SetProperty(p Property)   { c.property = p }
func (c *Criteria) SetOperation(o Operation) { c.operation = o }
func (c *Criteria) SetValue(v string)        { c.value = v }

// Validate reports the first problem found, checking the property, the
// operation, operation support and finally the value.
func (c *Criteria) Validate() error {
	switch {
	case c.property == nil:
		return ErrPropertyNotSpecified
	case c.operation == nil:
		return ErrOperationNotSpecified
	case !c.property.Supports(c.operation):
		return ErrOperationNotSupported
	}

	return c.property.ValidateValue(c.operation, c.value)
}

func (c *Criteria) Match(target any) (bool, error) {
	return c.MatchAt(target, time.Now())
}

// MatchAt is Match with date ranges resolved relative to now.
func (c *Criteria) MatchAt(target any, now time.Time) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	return c.property.MatchAt(target, c.operation, c.value, now)
}

func (c *Criteria) Equal(other *Criteria) bool {
	if c == nil || other == nil {
		return c == other
	}

	return c.property == other.property &&
		c.operation == other.operation &&
		c.value == other.value
}

func (c *Criteria) clone() *Criteria {
	copied := *c

	return &copied
}
