// Package categorizer maps free-text transaction descriptions to a fixed
// spending category.
//
// Categories are tested in a fixed priority order (dining, shopping, travel,
// groceries, entertainment, fuel, utilities, healthcare, education) and the
// first matching group wins. A description that matches nothing is "other".
// There is no scoring and no multi-category output.
package categorizer

import (
	"strings"

	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/models"
)

// Categorizer assigns categories using an ordered rule list.
// It is safe for concurrent use; rules are never mutated after construction.
type Categorizer struct {
	rules  []Rule
	logger logging.Logger
}

// Option configures a Categorizer.
type Option func(*options)

type options struct {
	extra map[models.Category][]string
}

// WithExtraKeywords appends literal keywords to the built-in groups.
// Group order is unaffected.
func WithExtraKeywords(extra map[models.Category][]string) Option {
	return func(o *options) {
		if o.extra == nil {
			o.extra = make(map[models.Category][]string)
		}
		for c, kws := range extra {
			o.extra[c] = append(o.extra[c], kws...)
		}
	}
}

// New creates a Categorizer. A nil logger falls back to the default adapter.
func New(logger logging.Logger, opts ...Option) *Categorizer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rules := defaultRules
	if len(o.extra) > 0 {
		rules = compileRules(defaultGroups, o.extra)
	}

	return &Categorizer{
		rules:  rules,
		logger: logging.OrDefault(logger).WithField(logging.FieldComponent, "categorizer"),
	}
}

// Categorize returns the category of the first rule matching description,
// or models.CategoryOther. It never fails.
func (c *Categorizer) Categorize(description string) models.Category {
	lower := strings.ToLower(description)
	for _, rule := range c.rules {
		if keyword := rule.Pattern.FindString(lower); keyword != "" {
			c.logger.Debug("Description categorized",
				logging.F(logging.FieldCategory, rule.Category),
				logging.F("keyword", keyword))
			return rule.Category
		}
	}
	return models.CategoryOther
}

// Rules returns a copy of the categorizer's rules in priority order.
func (c *Categorizer) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Categorize applies the built-in rules without logging.
func Categorize(description string) models.Category {
	lower := strings.ToLower(description)
	for _, rule := range defaultRules {
		if rule.Pattern.MatchString(lower) {
			return rule.Category
		}
	}
	return models.CategoryOther
}
