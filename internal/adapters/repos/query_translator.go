package repos

import (
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
)

const unreadCountExpr = "(SELECT COUNT(*) FROM articles u WHERE u.feed_id = f.id AND NOT u.read)"

var (
	alwaysTrue  = sq.Expr("TRUE")
	alwaysFalse = sq.Expr("FALSE")
)

// columnMapping resolves property descriptors onto the joined
// articles a / feeds f columns.
var columnMapping = map[string]string{
	query.ArticleTitleProperty.Descriptor():     "a.title",
	query.ArticleTextProperty.Descriptor():      "a.body",
	query.ArticleAuthorProperty.Descriptor():    "a.author",
	query.ArticleTagsProperty.Descriptor():      "a.tags",
	query.ArticleDateProperty.Descriptor():      "a.published_at",
	query.ArticleStatusProperty.Descriptor():    "a.read",
	query.ArticlePinnedProperty.Descriptor():    "a.pinned",
	query.ArticleSentimentProperty.Descriptor(): "a.sentiment",
	query.FeedTitleProperty.Descriptor():        "f.title",
	query.FeedStarzProperty.Descriptor():        "f.starz",
	query.FeedUnreadCountProperty.Descriptor():  unreadCountExpr,
}

// QueryTranslator renders a smart feed query as a SQL condition with the
// same semantics as query.Query.Match.
type QueryTranslator struct {
	logger *logger.Logger
	now    func() time.Time
}

func NewQueryTranslator(log *logger.Logger, now func() time.Time) *QueryTranslator {
	if now == nil {
		now = time.Now
	}

	return &QueryTranslator{logger: log, now: now}
}

func (t *QueryTranslator) Translate(q *query.Query) sq.Sqlizer {
	criteria := q.All()

	if len(criteria) == 0 {
		if q.IsAnd() {
			return alwaysTrue
		}

		return alwaysFalse
	}

	if q.IsAnd() {
		conditions := make(sq.And, 0, len(criteria))
		for _, c := range criteria {
			conditions = append(conditions, t.translateCriteria(c))
		}

		return conditions
	}

	conditions := make(sq.Or, 0, len(criteria))
	for _, c := range criteria {
		conditions = append(conditions, t.translateCriteria(c))
	}

	return conditions
}

// translateCriteria maps a criteria that cannot be evaluated onto FALSE.
func (t *QueryTranslator) translateCriteria(c *query.Criteria) sq.Sqlizer {
	if err := c.Validate(); err != nil {
		t.warn(c, err.Error())

		return alwaysFalse
	}

	col, ok := columnMapping[c.Property().Descriptor()]
	if !ok {
		t.warn(c, "no column for property")

		return alwaysFalse
	}

	value := c.Value()

	switch c.Property().Type() {
	case query.TypeString:
		return t.translateText(c, col, value)
	case query.TypeDate:
		return t.translateDate(c, col, value)
	case query.TypeLong, query.TypeStarz:
		return t.translateNumber(c, col, value)
	case query.TypeStatus:
		return translateFlag(c.Operation(), col, value == query.StatusRead)
	case query.TypeFlag:
		return translateFlag(c.Operation(), col, value == query.FlagSet)
	case query.TypeSentiment:
		return translateEquality(c.Operation(), col, value)
	}

	t.warn(c, "unsupported value type")

	return alwaysFalse
}

func (t *QueryTranslator) translateText(c *query.Criteria, col, value string) sq.Sqlizer {
	switch c.Operation() {
	case query.StringEquals, query.StringNotEquals:
		return translateEquality(c.Operation(), col, value)
	case query.StringContains:
		return containsAll(col, query.Tokenize(value))
	case query.StringNotContains:
		return sq.Expr("NOT (?)", containsAll(col, query.Tokenize(value)))
	case query.TagContains:
		return taggedWithAll(col, query.Tokenize(value))
	case query.TagNotContains:
		return sq.Expr("NOT (?)", taggedWithAll(col, query.Tokenize(value)))
	}

	t.warn(c, "unsupported text operation")

	return alwaysFalse
}

func (t *QueryTranslator) translateDate(c *query.Criteria, col, value string) sq.Sqlizer {
	dateRange, ok := query.DateRangeByName(value, t.now())
	if !ok {
		t.warn(c, "unknown date range")

		return alwaysFalse
	}

	switch c.Operation() {
	case query.DateMatch:
		return sq.And{sq.GtOrEq{col: dateRange.Start}, sq.Lt{col: dateRange.End}}
	case query.DateAfter:
		return sq.GtOrEq{col: dateRange.End}
	case query.DateBefore:
		return sq.Lt{col: dateRange.Start}
	}

	t.warn(c, "unsupported date operation")

	return alwaysFalse
}

func (t *QueryTranslator) translateNumber(c *query.Criteria, col, value string) sq.Sqlizer {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		t.warn(c, err.Error())

		return alwaysFalse
	}

	switch c.Operation() {
	case query.LongEquals:
		return sq.Expr(col+" = ?", n)
	case query.LongGreater:
		return sq.Expr(col+" > ?", n)
	case query.LongLess:
		return sq.Expr(col+" < ?", n)
	}

	t.warn(c, "unsupported numeric operation")

	return alwaysFalse
}

func translateEquality(op query.Operation, col, value string) sq.Sqlizer {
	if op == query.StringNotEquals {
		return sq.NotEq{col: value}
	}

	return sq.Eq{col: value}
}

func translateFlag(op query.Operation, col string, set bool) sq.Sqlizer {
	if op == query.StringNotEquals {
		set = !set
	}

	return sq.Eq{col: set}
}

func containsAll(col string, tokens []string) sq.Sqlizer {
	if len(tokens) == 0 {
		return alwaysTrue
	}

	conditions := make(sq.And, 0, len(tokens))
	for _, token := range tokens {
		conditions = append(conditions, sq.ILike{col: "%" + escapeLike(token) + "%"})
	}

	return conditions
}

func taggedWithAll(col string, tokens []string) sq.Sqlizer {
	if len(tokens) == 0 {
		return alwaysTrue
	}

	conditions := make(sq.And, 0, len(tokens))
	for _, token := range tokens {
		conditions = append(conditions, sq.Expr(
			"EXISTS (SELECT 1 FROM unnest("+col+") AS tag WHERE lower(tag) = lower(?))",
			token,
		))
	}

	return conditions
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (t *QueryTranslator) warn(c *query.Criteria, reason string) {
	if t.logger == nil {
		return
	}

	event := t.logger.Warn().Str("reason", reason).Str("value", c.Value())
	if c.Property() != nil {
		event = event.Str("property", c.Property().Descriptor())
	}

	if c.Operation() != nil {
		event = event.Str("operation", c.Operation().Descriptor())
	}

	event.Msg("criteria cannot be translated, matching nothing")
}
