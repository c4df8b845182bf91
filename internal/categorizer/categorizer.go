// Package categorizer assigns expense descriptions to categories by
// first-match-wins keyword matching over an ordered category list, and builds
// the per-category spend breakdown of a user.
//
// Classification never fails: a description matching no keyword is "Other".
package categorizer

import (
	"strings"

	"fjacquet/split-insights/internal/logging"
	"fjacquet/split-insights/internal/models"
)

type compiledCategory struct {
	name     string
	keywords []string
}

// Classifier maps free-text descriptions to category names. It is immutable
// after construction and safe for concurrent use.
type Classifier struct {
	categories []models.CategoryConfig
	compiled   []compiledCategory
	logger     logging.Logger
}

// NewClassifier creates a Classifier over the given ordered categories. An
// empty list selects DefaultCategories.
func NewClassifier(categories []models.CategoryConfig, logger logging.Logger) *Classifier {
	if len(categories) == 0 {
		categories = DefaultCategories()
	}

	c := &Classifier{
		categories: cloneCategories(categories),
		compiled:   make([]compiledCategory, 0, len(categories)),
		logger:     logging.ForComponent(logger, "categorizer"),
	}

	for _, cat := range c.categories {
		cc := compiledCategory{name: cat.Name}
		for _, kw := range cat.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			// an empty keyword would match every description
			if kw == "" {
				continue
			}
			cc.keywords = append(cc.keywords, kw)
		}
		c.compiled = append(c.compiled, cc)
	}

	return c
}

// CategorySource supplies the ordered category list, typically from the YAML
// category store.
type CategorySource interface {
	LoadCategories() ([]models.CategoryConfig, error)
}

// NewClassifierFromStore loads categories from store, falling back to
// DefaultCategories when the store fails or holds no categories.
func NewClassifierFromStore(store CategorySource, logger logging.Logger) *Classifier {
	logger = logging.OrDiscard(logger)
	if store == nil {
		return NewClassifier(nil, logger)
	}

	categories, err := store.LoadCategories()
	if err != nil {
		logger.WithError(err).Warn("Failed to load categories, using built-in defaults")
		return NewClassifier(nil, logger)
	}

	logger.WithField(logging.FieldCount, len(categories)).Debug("Loaded categories for classifier")
	return NewClassifier(categories, logger)
}

// Classify returns the first category, in declaration order, with a keyword
// contained in the lower-cased description. It returns models.CategoryOther when
// nothing matches.
func (c *Classifier) Classify(description string) string {
	text := strings.ToLower(description)
	if strings.TrimSpace(text) == "" {
		return models.CategoryOther
	}

	for _, cat := range c.compiled {
		for _, kw := range cat.keywords {
			if strings.Contains(text, kw) {
				c.logger.Debug("Description classified by keyword",
					logging.F(logging.FieldDescription, description),
					logging.F(logging.FieldKeyword, kw),
					logging.F(logging.FieldCategory, cat.name))
				return cat.name
			}
		}
	}

	return models.CategoryOther
}

// CategoryOf returns the category carried by the expense when present and
// non-empty, otherwise the classification of its description.
func (c *Classifier) CategoryOf(e models.Expense) string {
	if label := e.CategoryLabel(); label != "" {
		return label
	}
	return c.Classify(e.Description)
}

// Categories returns a copy of the ordered category list.
func (c *Classifier) Categories() []models.CategoryConfig {
	return cloneCategories(c.categories)
}

// Names returns the category names in declaration order, followed by
// models.CategoryOther when the list does not already carry it.
func (c *Classifier) Names() []string {
	names := make([]string, 0, len(c.categories)+1)
	hasOther := false
	for _, cat := range c.categories {
		names = append(names, cat.Name)
		if cat.Name == models.CategoryOther {
			hasOther = true
		}
	}
	if !hasOther {
		names = append(names, models.CategoryOther)
	}
	return names
}

// KeywordConflict reports a keyword declared by more than one category. Only the
// first category can ever win for it.
type KeywordConflict struct {
	Keyword    string
	Categories []string
}

// Validate reports keywords shared between categories, in declaration order of
// their first use. Classification does not depend on it.
func (c *Classifier) Validate() []KeywordConflict {
	owners := make(map[string][]string)
	var order []string

	for _, cat := range c.compiled {
		seen := make(map[string]bool)
		for _, kw := range cat.keywords {
			if seen[kw] {
				continue
			}
			seen[kw] = true
			if _, ok := owners[kw]; !ok {
				order = append(order, kw)
			}
			owners[kw] = append(owners[kw], cat.name)
		}
	}

	var conflicts []KeywordConflict
	for _, kw := range order {
		if len(owners[kw]) > 1 {
			conflicts = append(conflicts, KeywordConflict{Keyword: kw, Categories: owners[kw]})
		}
	}
	return conflicts
}

func cloneCategories(in []models.CategoryConfig) []models.CategoryConfig {
	out := make([]models.CategoryConfig, len(in))
	for i, cat := range in {
		out[i] = models.CategoryConfig{
			Name:     cat.Name,
			Keywords: append([]string(nil), cat.Keywords...),
		}
	}
	return out
}
