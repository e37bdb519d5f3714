package categorizer

import (
	"fmt"
	"os"

	"cardsense/cardsense-india/internal/models"

	"gopkg.in/yaml.v3"
)

// KeywordFile is the YAML layout for extra merchant keywords:
//
//	categories:
//	  - name: dining
//	    keywords: ["truffles", "meghana foods"]
type KeywordFile struct {
	Categories []KeywordGroup `yaml:"categories"`
}

// KeywordGroup lists extra keywords for one category.
type KeywordGroup struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// LoadKeywordFile reads extra keywords from a YAML file.
func LoadKeywordFile(path string) (map[models.Category][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read keyword file %s: %w", path, err)
	}
	return ParseKeywords(data)
}

// ParseKeywords decodes a KeywordFile document. Unknown categories, and
// "other" (which has no pattern), are rejected.
func ParseKeywords(data []byte) (map[models.Category][]string, error) {
	var file KeywordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse keyword file: %w", err)
	}

	extra := make(map[models.Category][]string)
	for _, group := range file.Categories {
		category, err := models.ParseCategory(group.Name)
		if err != nil {
			return nil, err
		}
		if category == models.CategoryOther {
			return nil, fmt.Errorf("keywords cannot be assigned to %q", models.CategoryOther)
		}
		extra[category] = append(extra[category], group.Keywords...)
	}
	return extra, nil
}
