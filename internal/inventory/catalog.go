// Package inventory holds the rentable items and the catalog that lists them.
package inventory

import (
	"strings"

	"github.com/roach88/flix/internal/rentalerr"
	"github.com/roach88/flix/internal/sequence"
)

// Catalog is the store's item list, kept in case-insensitive title order.
// Items are addressed by position, which is how customers pick them.
type Catalog struct {
	items *sequence.List[*Item]
}

// NewCatalog creates a catalog holding the given items in title order.
func NewCatalog(items ...*Item) *Catalog {
	c := &Catalog{items: sequence.New[*Item]()}
	for _, it := range items {
		c.Add(it)
	}
	return c
}

// Add inserts an item before the first item whose title sorts after it.
// Items with equal titles keep insertion order.
func (c *Catalog) Add(it *Item) {
	for i := 0; i < c.items.Len(); i++ {
		existing, _ := c.items.At(i)
		if CompareByName(it, existing) < 0 {
			c.items.InsertAt(i, it)
			return
		}
	}
	c.items.Append(it)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return c.items.Len()
}

// At returns the item at position i.
// Returns INDEX_OUT_OF_RANGE if i is outside [0, Len()).
func (c *Catalog) At(i int) (*Item, error) {
	it, ok := c.items.At(i)
	if !ok {
		return nil, rentalerr.OutOfRange("catalog", i, c.items.Len())
	}
	return it, nil
}

// Find returns the first item whose title matches name ignoring case.
func (c *Catalog) Find(name string) (*Item, bool) {
	c.items.ResetCursor()
	for c.items.HasNext() {
		it, _ := c.items.Next()
		if CompareNames(it.Name(), name) == 0 {
			return it, true
		}
	}
	return nil, false
}

// Traverse lists every item's display name, one per line.
func (c *Catalog) Traverse() string {
	var b strings.Builder
	c.items.ResetCursor()
	for c.items.HasNext() {
		it, _ := c.items.Next()
		b.WriteString(it.DisplayName())
		b.WriteString("\n")
	}
	return b.String()
}

// Snapshot returns the items in catalog order.
func (c *Catalog) Snapshot() []*Item {
	out := make([]*Item, 0, c.items.Len())
	c.items.ResetCursor()
	for c.items.HasNext() {
		it, _ := c.items.Next()
		out = append(out, it)
	}
	return out
}
