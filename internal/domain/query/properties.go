package query

import (
	"strconv"
	"strings"
)

const defaultSearchValue = "news"

var (
	textOperations    = []Operation{StringContains, StringNotContains}
	stringOperations  = []Operation{StringContains, StringNotContains, StringEquals, StringNotEquals}
	tagOperations     = []Operation{TagContains, TagNotContains}
	dateOperations    = []Operation{DateMatch, DateBefore, DateAfter}
	numericOperations = []Operation{LongEquals, LongGreater, LongLess}
	choiceOperations  = []Operation{StringEquals, StringNotEquals}
)

var (
	ArticleTitleProperty Property = &property{
		name:         "Article title",
		descriptor:   "articleTitle",
		valueType:    TypeString,
		defaultValue: defaultSearchValue,
		operations:   stringOperations,
		extract:      articleValue(ArticleTarget.ArticleTitle),
	}

	ArticleTextProperty Property = &property{
		name:         "Article text",
		descriptor:   "articleText",
		valueType:    TypeString,
		defaultValue: defaultSearchValue,
		operations:   textOperations,
		extract:      articleValue(ArticleTarget.ArticleText),
	}

	ArticleAuthorProperty Property = &property{
		name:         "Article author",
		descriptor:   "articleAuthor",
		valueType:    TypeString,
		defaultValue: defaultSearchValue,
		operations:   stringOperations,
		extract:      articleValue(ArticleTarget.ArticleAuthor),
	}

	ArticleTagsProperty Property = &property{
		name:         "Article tags",
		descriptor:   "articleTags",
		valueType:    TypeString,
		defaultValue: defaultSearchValue,
		operations:   tagOperations,
		extract: articleValue(func(a ArticleTarget) string {
			return strings.Join(a.ArticleTags(), " ")
		}),
	}

	ArticleDateProperty Property = &property{
		name:         "Article date",
		descriptor:   "articleDate",
		valueType:    TypeDate,
		defaultValue: RangeToday,
		operations:   dateOperations,
		extract: articleValue(func(a ArticleTarget) string {
			return strconv.FormatInt(a.ArticlePublished().UnixMilli(), 10)
		}),
	}

	ArticleStatusProperty Property = &property{
		name:         "Article status",
		descriptor:   "articleStatus",
		valueType:    TypeStatus,
		defaultValue: StatusUnread,
		operations:   choiceOperations,
		extract: articleValue(func(a ArticleTarget) string {
			return formatBool(a.ArticleRead(), StatusRead, StatusUnread)
		}),
	}

	ArticlePinnedProperty Property = &property{
		name:         "Article pinned",
		descriptor:   "articlePinned",
		valueType:    TypeFlag,
		defaultValue: FlagSet,
		operations:   []Operation{StringEquals},
		extract: articleValue(func(a ArticleTarget) string {
			return formatBool(a.ArticlePinned(), FlagSet, FlagUnset)
		}),
	}

	ArticleSentimentProperty Property = &property{
		name:         "Article sentiment",
		descriptor:   "articleSentiment",
		valueType:    TypeSentiment,
		defaultValue: SentimentPositive,
		operations:   choiceOperations,
		extract:      articleValue(ArticleTarget.ArticleSentiment),
	}

	FeedTitleProperty Property = &property{
		name:         "Feed title",
		descriptor:   "feedTitle",
		valueType:    TypeString,
		defaultValue: defaultSearchValue,
		operations:   stringOperations,
		extract:      feedValue(FeedTarget.FeedTitle),
	}

	FeedStarzProperty Property = &property{
		name:         "Feed rating",
		descriptor:   "feedStarz",
		valueType:    TypeStarz,
		defaultValue: "3",
		operations:   numericOperations,
		extract: feedValue(func(f FeedTarget) string {
			return formatInt(f.FeedStarz())
		}),
	}

	FeedUnreadCountProperty Property = &property{
		name:         "Feed unread count",
		descriptor:   "feedUnreadCount",
		valueType:    TypeLong,
		defaultValue: "0",
		operations:   numericOperations,
		extract: feedValue(func(f FeedTarget) string {
			return formatInt(f.FeedUnreadCount())
		}),
	}
)

var (
	properties = []Property{
		ArticleTitleProperty,
		ArticleTextProperty,
		ArticleAuthorProperty,
		ArticleTagsProperty,
		ArticleDateProperty,
		ArticleStatusProperty,
		ArticlePinnedProperty,
		ArticleSentimentProperty,
		FeedTitleProperty,
		FeedStarzProperty,
		FeedUnreadCountProperty,
	}

	propertiesByDescriptor = indexProperties(properties)
)

func indexProperties(props []Property) map[string]Property {
	index := make(map[string]Property, len(props))
	for _, p := range props {
		index[p.Descriptor()] = p
	}

	return index
}

// Properties returns every registered property in display order.
func Properties() []Property {
	result := make([]Property, len(properties))
	copy(result, properties)

	return result
}

// PropertyByDescriptor resolves a persisted property descriptor.
func PropertyByDescriptor(descriptor string) (Property, bool) {
	p, ok := propertiesByDescriptor[descriptor]

	return p, ok
}
