package account

import (
	"strings"

	"github.com/roach88/flix/internal/inventory"
	"github.com/roach88/flix/internal/sequence"
)

// ReserveList returns reserved titles in priority order, one per line.
func (a *Account) ReserveList() string {
	return traverse(a.reserves)
}

// AtHomeList returns at-home titles in checkout order, one per line.
func (a *Account) AtHomeList() string {
	return traverse(a.atHome)
}

// ReserveLen returns the number of pending reservations.
func (a *Account) ReserveLen() int {
	return a.reserves.Len()
}

// AtHomeLen returns the number of items at home.
func (a *Account) AtHomeLen() int {
	return a.atHome.Len()
}

// ReservedAt returns the reservation at position i.
func (a *Account) ReservedAt(i int) (*inventory.Item, bool) {
	return a.reserves.At(i)
}

// AtHomeAt returns the at-home item at position i.
func (a *Account) AtHomeAt(i int) (*inventory.Item, bool) {
	return a.atHome.At(i)
}

func traverse(l *sequence.List[*inventory.Item]) string {
	var b strings.Builder
	l.ResetCursor()
	for l.HasNext() {
		item, _ := l.Next()
		b.WriteString(item.Name())
		b.WriteString("\n")
	}
	return b.String()
}
