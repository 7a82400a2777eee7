package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/flix/internal/rentalerr"
)

// unavailableSuffix marks items with no stock in display names.
const unavailableSuffix = " (currently unavailable)"

// Item is a rentable title with a stock count.
//
// Items are shared by pointer between the catalog and every account queue
// that references them. Stock changes only through TakeUnit and ReturnUnit.
type Item struct {
	name  string
	stock int
}

// NewItem creates an item. The name is trimmed and NFC-normalized.
// Returns INVALID_ARGUMENT for an empty name or negative stock.
func NewItem(name string, stock int) (*Item, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return nil, rentalerr.New(rentalerr.CodeInvalidArgument, "item name is empty")
	}
	if stock < 0 {
		return nil, rentalerr.New(rentalerr.CodeInvalidArgument, "item %q has negative stock %d", name, stock)
	}
	return &Item{name: name, stock: stock}, nil
}

// Name returns the title.
func (it *Item) Name() string {
	return it.name
}

// Stock returns the number of units on the shelf.
func (it *Item) Stock() int {
	return it.stock
}

// IsAvailable reports whether at least one unit is on the shelf.
func (it *Item) IsAvailable() bool {
	return it.stock > 0
}

// ReturnUnit puts one unit back on the shelf.
func (it *Item) ReturnUnit() {
	it.stock++
}

// TakeUnit removes one unit from the shelf.
// Returns OUT_OF_STOCK if none is available.
func (it *Item) TakeUnit() error {
	if it.stock <= 0 {
		return rentalerr.New(rentalerr.CodeOutOfStock, "no copy of %q is available", it.name)
	}
	it.stock--
	return nil
}

// DisplayName returns the title, marked when no unit is available.
func (it *Item) DisplayName() string {
	if !it.IsAvailable() {
		return it.name + unavailableSuffix
	}
	return it.name
}

// CompareByName orders items by case-folded title.
func CompareByName(a, b *Item) int {
	return CompareNames(a.name, b.name)
}

// CompareNames compares two names ignoring case.
// Returns a negative number, zero, or a positive number like strings.Compare.
func CompareNames(a, b string) int {
	fold := cases.Fold()
	return strings.Compare(fold.String(a), fold.String(b))
}
