// Package insights asks a language model for a short spending analysis of
// an uploaded statement.
package insights

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"cardsense/cardsense-india/internal/logging"
	"cardsense/cardsense-india/internal/models"
	"cardsense/cardsense-india/internal/report"

	"golang.org/x/time/rate"
)

// MaxStatementChars bounds the statement text sent to the model.
const MaxStatementChars = 10000

var (
	ErrAIDisabled  = errors.New("AI analysis is disabled")
	ErrRateLimited = errors.New("too many analysis requests; try again shortly")
	ErrEmptyText   = errors.New("statement text is empty")
)

// Options configures an Analyzer.
type Options struct {
	Enabled           bool
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
}

// Insight is the model's analysis of one statement.
type Insight struct {
	Text      string `json:"insights"`
	Model     string `json:"model,omitempty"`
	Truncated bool   `json:"truncated"`
}

// Analyzer builds prompts and calls the AI client under a rate limit.
type Analyzer struct {
	client  AIClient
	opts    Options
	limiter *rate.Limiter
	logger  logging.Logger
}

// NewAnalyzer creates an Analyzer. A nil client disables analysis.
func NewAnalyzer(client AIClient, opts Options, logger logging.Logger) *Analyzer {
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 10
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Analyzer{
		client:  client,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), opts.RequestsPerMinute),
		logger:  logging.OrDefault(logger).WithField(logging.FieldComponent, "insights"),
	}
}

// Enabled reports whether Analyze can reach a model.
func (a *Analyzer) Enabled() bool {
	return a != nil && a.opts.Enabled && a.client != nil
}

// Analyze sends the statement text, truncated to MaxStatementChars, together
// with the computed summary to the model.
func (a *Analyzer) Analyze(ctx context.Context, rawText string, summary report.Summary) (*Insight, error) {
	if !a.Enabled() {
		return nil, ErrAIDisabled
	}
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyText
	}
	if !a.limiter.Allow() {
		a.logger.Warn("Analysis request rate limited")
		return nil, ErrRateLimited
	}

	text, truncated := Truncate(rawText, MaxStatementChars)
	prompt := BuildPrompt(text, summary)

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	start := time.Now()
	out, err := a.client.GenerateText(ctx, prompt)
	if err != nil {
		a.logger.WithError(err).Error("AI analysis failed")
		return nil, fmt.Errorf("AI analysis failed: %w", err)
	}

	a.logger.Info("AI analysis completed",
		logging.F(logging.FieldModel, a.opts.Model),
		logging.F("truncated", truncated),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return &Insight{Text: out, Model: a.opts.Model, Truncated: truncated}, nil
}

// Truncate cuts s to at most limit characters without splitting a rune.
func Truncate(s string, limit int) (string, bool) {
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// BuildPrompt renders the analysis prompt.
func BuildPrompt(statementText string, summary report.Summary) string {
	categories := make([]string, 0, len(summary.ByCategory))
	for c := range summary.ByCategory {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)

	var spend strings.Builder
	for _, c := range categories {
		fmt.Fprintf(&spend, "- %s: ₹%s\n", c, summary.CategoryTotal(models.Category(c)).StringFixed(2))
	}
	if spend.Len() == 0 {
		spend.WriteString("- none\n")
	}

	return fmt.Sprintf(`You are a personal finance assistant for an Indian credit card user.
Analyze the statement below and respond with:
1. Three observations about the spending pattern.
2. The category where the user could save the most, with a concrete suggestion.
3. Any unusual or duplicate-looking charges.
Keep the answer under 200 words and use ₹ for amounts.

Summary:
Transactions: %d (%d debits, %d credits)
Total spent: ₹%s
Total received: ₹%s
Spend by category:
%s
Statement text:
%s`,
		summary.Count, summary.Debits, summary.Credits,
		summary.Total.StringFixed(2),
		summary.TotalCredit.StringFixed(2),
		spend.String(),
		statementText)
}
