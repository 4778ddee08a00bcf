// Package classify applies skip/disable detection and category resolution to
// parsed statement rows. All rules are ordered lists evaluated with
// first-match-wins semantics.
package classify

import (
	"strings"

	"github.com/centavo-app/centavo/internal/ledger"
	"github.com/centavo-app/centavo/internal/statement"
)

// Classifier holds the rule tables and the classification history for one
// import run. It mutates candidates in place and keeps no per-row state, so a
// single instance may classify any number of rows within its run.
type Classifier struct {
	skips      []SkipRule
	categories []CategoryRule
	history    []ledger.Classification
}

// Option customizes a Classifier.
type Option func(*Classifier)

// WithHistory supplies previously persisted classifications. History outranks
// the static keyword table: users correct categories over time and those
// corrections should win over shipped defaults.
func WithHistory(history []ledger.Classification) Option {
	return func(c *Classifier) {
		c.history = history
	}
}

// WithRules replaces the default rule tables, mainly for tests.
func WithRules(skips []SkipRule, categories []CategoryRule) Option {
	return func(c *Classifier) {
		c.skips = skips
		c.categories = categories
	}
}

func New(opts ...Option) *Classifier {
	c := &Classifier{
		skips:      DefaultSkipRules,
		categories: DefaultCategoryRules,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Apply classifies one candidate: skip/disable detection first, then category
// and tag resolution. Skipped rows are still categorized so the preview can
// show what they would have been; they are simply never persisted.
func (c *Classifier) Apply(format statement.Format, cand *ledger.Candidate) {
	desc := strings.ToLower(strings.TrimSpace(cand.Description))

	for _, rule := range c.skips {
		if rule.Format != format {
			continue
		}

		if strings.HasPrefix(desc, rule.Prefix) {
			cand.Skipped = true
			cand.DisableEdit = true

			break
		}
	}

	c.applyHistory(desc, cand)

	if cand.Category != ledger.CategoryUncategorized {
		return
	}

	for _, rule := range c.categories {
		if strings.Contains(desc, strings.ToLower(rule.Keyword)) {
			cand.Category = rule.Category
			return
		}
	}
}

// applyHistory fills category and tags from the first remembered
// classification whose description is a substring of the row's description or
// vice versa. Category is only filled while still at the sentinel, tags only
// while empty.
func (c *Classifier) applyHistory(desc string, cand *ledger.Candidate) {
	if desc == "" {
		return
	}

	for _, h := range c.history {
		past := strings.ToLower(strings.TrimSpace(h.Description))
		if past == "" {
			continue
		}

		if !strings.Contains(desc, past) && !strings.Contains(past, desc) {
			continue
		}

		if cand.Category == ledger.CategoryUncategorized && h.Category != "" {
			cand.Category = h.Category
		}

		if len(cand.Tags) == 0 && len(h.Tags) > 0 {
			cand.Tags = append([]string(nil), h.Tags...)
		}

		return
	}
}
