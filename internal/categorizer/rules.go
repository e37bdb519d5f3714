package categorizer

import (
	"regexp"
	"strings"

	"cardsense/cardsense-india/internal/models"
)

// Rule pairs a category with the pattern that selects it. Patterns are
// matched against the lower-cased description.
type Rule struct {
	Category models.Category
	Pattern  *regexp.Regexp
}

type keywordGroup struct {
	category  models.Category
	fragments []string // regular-expression fragments, already lower-case
}

// defaultGroups is evaluated top to bottom and the first match wins.
// Changing the order changes how existing statements are categorized.
var defaultGroups = []keywordGroup{
	{models.CategoryDining, []string{
		"swiggy", "zomato", "restaurant", "food", "cafe", "café", "coffee", "starbucks",
		"domino", "pizza", "mcdonald", "kfc", "burger", "subway", "dine", "dining",
		"eatery", "bistro", "barbeque", "biryani", "haldiram", "chaayos", "dunkin", "bakery",
	}},
	{models.CategoryShopping, []string{
		"amazon", "flipkart", "myntra", "ajio", "meesho", "nykaa", "snapdeal", "tata cliq",
		"shoppers stop", "lifestyle", "westside", "pantaloons", "croma", "reliance digital",
		"decathlon", "ikea", `\bmall\b`, "shop", "store", "retail",
	}},
	{models.CategoryTravel, []string{
		"makemytrip", "goibibo", "cleartrip", "yatra", "ixigo", "irctc", "indigo",
		"air india", "vistara", "spicejet", "akasa", "airline", "airport", "flight",
		"uber", `\bola\b`, "rapido", "redbus", `\bhotel`, "oyo", "airbnb", "travel",
		"railway", `\bmetro\b`, "fastag",
	}},
	{models.CategoryGroceries, []string{
		"bigbasket", "big basket", "blinkit", "zepto", "grofers", "instamart", "dmart",
		"d-mart", "jiomart", "grocery", "groceries", "supermarket", "hypermarket", "kirana",
		"spencer", "more retail", "nature's basket", "star bazaar", "ratnadeep",
	}},
	{models.CategoryEntertainment, []string{
		"netflix", "prime video", "hotstar", "disney", "spotify", "gaana", "wynk",
		"bookmyshow", `\bpvr\b`, "inox", "cinepolis", "cinema", "movie", "zee5", "sonyliv",
		"jiocinema", "youtube", "playstation", "xbox", "gaming",
	}},
	{models.CategoryFuel, []string{
		"petrol", "diesel", "fuel", `\bhpcl\b`, `\bbpcl\b`, `\biocl\b`, "indian oil",
		"indianoil", "bharat petroleum", "hindustan petroleum", `\bshell\b`, "nayara",
		"filling station", "petroleum", `\bcng\b`,
	}},
	{models.CategoryUtilities, []string{
		"electricity", "bescom", "msedcl", "tata power", "torrent power", "bses",
		"water bill", "water board", "gas bill", "piped gas", "mahanagar gas", "broadband",
		"airtel", `\bjio\b`, "vodafone", `\bvi\b`, "bsnl", "act fibernet", "recharge",
		`\bdth\b`, "tata play", "postpaid", "prepaid", "utility", `bill ?pay`, "bbps",
	}},
	{models.CategoryHealthcare, []string{
		"hospital", "clinic", "pharmacy", "pharma", "chemist", "apollo", "medplus",
		"netmeds", `\b1mg\b`, "pharmeasy", "practo", "doctor", "dental", "medical",
		"medicine", "diagnostic", "pathology", `\blabs?\b`, "health",
	}},
	{models.CategoryEducation, []string{
		"school", "college", "university", "tuition", "coaching", "coursera", "udemy",
		"byju", "unacademy", "upgrad", "vedantu", "education", "academy", "course",
		"exam fee", "fees",
	}},
}

// compileRules builds one alternation per group. extra keywords are literal
// strings; they are quoted and appended after the built-in fragments.
func compileRules(groups []keywordGroup, extra map[models.Category][]string) []Rule {
	rules := make([]Rule, 0, len(groups))
	for _, g := range groups {
		fragments := append([]string(nil), g.fragments...)
		for _, kw := range extra[g.category] {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			fragments = append(fragments, regexp.QuoteMeta(kw))
		}
		rules = append(rules, Rule{
			Category: g.category,
			Pattern:  regexp.MustCompile("(?:" + strings.Join(fragments, "|") + ")"),
		})
	}
	return rules
}

var defaultRules = compileRules(defaultGroups, nil)

// DefaultRules returns a copy of the built-in rules in priority order.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}
