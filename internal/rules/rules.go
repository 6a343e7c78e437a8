// Package rules filters and transforms a message table before it is
// handed to downstream consumers. A rule is a pure function from table
// to table; rules run strictly in sequence, each consuming the
// previous rule's output.
package rules

import (
	"regexp"

	"github.com/tylerchilds/textvault/internal/extract"
)

// Rule filters or alters a message table in some way.
type Rule struct {
	Name string
	Func func(extract.Table) extract.Table
}

// Apply runs the rules in order against the table and returns the
// final result. Filtering produces freshly built slices, so positional
// indexing stays dense after every rule.
func Apply(table extract.Table, ruleList ...Rule) extract.Table {
	for _, rule := range ruleList {
		table = rule.Func(table)
	}
	return table
}

var (
	wordRe = regexp.MustCompile(`\w`)
	// Matches http/https URLs the way Messages renders them inline.
	linkRe = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\(\), ]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)
)

// RemoveNonAlphanumeric drops messages whose text contains no word
// character at all. A single word character anywhere keeps the row.
func RemoveNonAlphanumeric() Rule {
	return Rule{
		Name: "remove-non-alphanumeric",
		Func: func(table extract.Table) extract.Table {
			kept := make(extract.Table, 0, len(table))
			for _, msg := range table {
				if wordRe.MatchString(msg.Text) {
					kept = append(kept, msg)
				}
			}
			return kept
		},
	}
}

// RemoveNonStandard drops messages that are not standard texts, such
// as reactions (love, like, emphasize, ...) or game invites. Standard
// messages have associated_message_type 0; reactions are 2000-2005,
// removed reactions 3000-3005, stickers 1000.
func RemoveNonStandard() Rule {
	return Rule{
		Name: "remove-non-standard",
		Func: func(table extract.Table) extract.Table {
			kept := make(extract.Table, 0, len(table))
			for _, msg := range table {
				if msg.Type == "0" {
					kept = append(kept, msg)
				}
			}
			return kept
		},
	}
}

// RemoveLinks strips URL substrings from message text in place. The
// row is kept even if nothing else remains; chain with
// RemoveNonAlphanumeric to drop messages that were only a link.
func RemoveLinks() Rule {
	return Rule{
		Name: "remove-links",
		Func: func(table extract.Table) extract.Table {
			out := make(extract.Table, 0, len(table))
			for _, msg := range table {
				msg.Text = linkRe.ReplaceAllString(msg.Text, "")
				out = append(out, msg)
			}
			return out
		},
	}
}
