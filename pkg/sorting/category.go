// Package sorting orders category names the way the storefront lists them:
// names starting with a digit, then Latin letters, then Thai consonants, each
// group in Thai alphabetical order.
package sorting

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ohmfruit/fruitstore-service/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type class struct {
	digit bool
	latin bool
	thai  bool
}

func classify(name string) class {
	r, _ := utf8.DecodeRuneInString(name)
	return class{
		digit: r >= '0' && r <= '9',
		latin: r >= 'a' && r <= 'z',
		thai:  r >= 'ก' && r <= 'ฮ',
	}
}

// comparer is not safe for concurrent use; the collator keeps buffers.
type comparer struct {
	collator *collate.Collator
}

func newComparer() *comparer {
	return &comparer{collator: collate.New(language.Thai)}
}

// compare expects lower-cased names. Names outside the three classes are not
// ranked against the others and fall through to collation.
func (c *comparer) compare(a, b string) int {
	ca, cb := classify(a), classify(b)

	if ca.digit && !cb.digit {
		return -1
	}
	if !ca.digit && cb.digit {
		return 1
	}
	if ca.latin && cb.thai {
		return -1
	}
	if ca.thai && cb.latin {
		return 1
	}

	return c.collator.CompareString(a, b)
}

// SortCategories returns a sorted copy of categories.
func SortCategories(categories []domain.Category) []domain.Category {
	return sortByName(categories, func(c domain.Category) string { return c.Name })
}

// SortNames returns a sorted copy of names.
func SortNames(names []string) []string {
	return sortByName(names, func(n string) string { return n })
}

func sortByName[T any](items []T, name func(T) string) []T {
	sorted := slices.Clone(items)
	c := newComparer()

	slices.SortStableFunc(sorted, func(a, b T) int {
		return c.compare(strings.ToLower(name(a)), strings.ToLower(name(b)))
	})

	return sorted
}
