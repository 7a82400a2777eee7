package sequence

import (
	"github.com/roach88/flix/internal/rentalerr"
)

// handle addresses a node slot. 0 means "no node".
type handle int

const nilHandle handle = 0

type node[T any] struct {
	value T
	next  handle
}

// List is an ordered, 0-indexed, duplicate-permitting sequence.
// The zero value is an empty list ready to use.
type List[T any] struct {
	nodes  []node[T]
	free   []handle
	head   handle
	tail   handle
	size   int
	cursor handle
}

// New creates an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.size
}

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool {
	return l.head == nilHandle
}

// At returns the element at position i.
// Returns (zero, false) if i is outside [0, Len()).
func (l *List[T]) At(i int) (T, bool) {
	if i < 0 || i >= l.size {
		var zero T
		return zero, false
	}
	return l.node(l.walk(i)).value, true
}

// InsertAt inserts v so that it becomes the element at position i.
//
// i <= 0 inserts at the front and i >= Len() appends. InsertAt never fails.
func (l *List[T]) InsertAt(i int, v T) {
	switch {
	case i >= l.size && l.size > 0:
		l.Append(v)
		return
	case i <= 0 || l.size == 0:
		h := l.alloc(v, l.head)
		l.head = h
		if l.tail == nilHandle {
			l.tail = h
		}
	default:
		prev := l.walk(i - 1)
		h := l.alloc(v, l.node(prev).next)
		l.node(prev).next = h
	}
	l.size++
	l.cursor = nilHandle
}

// Append adds v at the end of the list in O(1).
func (l *List[T]) Append(v T) {
	h := l.alloc(v, nilHandle)
	if l.tail == nilHandle {
		l.head = h
	} else {
		l.node(l.tail).next = h
	}
	l.tail = h
	l.size++
	l.cursor = nilHandle
}

// RemoveAt removes and returns the element at position i.
// Returns (zero, false) and leaves the list untouched if i is outside [0, Len()).
func (l *List[T]) RemoveAt(i int) (T, bool) {
	if i < 0 || i >= l.size {
		var zero T
		return zero, false
	}

	var h handle
	if i == 0 {
		h = l.head
		l.head = l.node(h).next
		if l.head == nilHandle {
			l.tail = nilHandle
		}
	} else {
		prev := l.walk(i - 1)
		h = l.node(prev).next
		l.node(prev).next = l.node(h).next
		if h == l.tail {
			l.tail = prev
		}
	}

	v := l.node(h).value
	l.release(h)
	l.size--
	l.cursor = nilHandle
	return v, true
}

// MoveAheadOne swaps the element at position i with its predecessor.
// Does nothing if i is 0 or outside [1, Len()). Every other element keeps
// its position.
func (l *List[T]) MoveAheadOne(i int) {
	if i <= 0 || i >= l.size {
		return
	}

	if i == 1 {
		a := l.head
		b := l.node(a).next
		l.node(a).next = l.node(b).next
		l.node(b).next = a
		l.head = b
		if l.tail == b {
			l.tail = a
		}
	} else {
		p := l.walk(i - 2)
		a := l.node(p).next
		b := l.node(a).next
		l.node(a).next = l.node(b).next
		l.node(b).next = a
		l.node(p).next = b
		if l.tail == b {
			l.tail = a
		}
	}
	l.cursor = nilHandle
}

// ResetCursor points the cursor at the first element, or leaves it
// exhausted if the list is empty.
func (l *List[T]) ResetCursor() {
	l.cursor = l.head
}

// HasNext reports whether the cursor points at an element.
func (l *List[T]) HasNext() bool {
	return l.cursor != nilHandle
}

// Next returns the element under the cursor and advances the cursor.
// Returns an EMPTY_TRAVERSAL error if the cursor is exhausted.
func (l *List[T]) Next() (T, error) {
	if l.cursor == nilHandle {
		var zero T
		return zero, rentalerr.New(rentalerr.CodeEmptyTraversal, "cursor has no current element")
	}
	n := l.node(l.cursor)
	l.cursor = n.next
	return n.value, nil
}

// walk returns the handle of the node at position i.
// Callers guarantee 0 <= i < size.
func (l *List[T]) walk(i int) handle {
	h := l.head
	for ; i > 0; i-- {
		h = l.node(h).next
	}
	return h
}

func (l *List[T]) node(h handle) *node[T] {
	return &l.nodes[h-1]
}

// alloc stores v in a free slot (or a new one) and returns its handle.
// Pointers obtained from node() before alloc are invalid afterwards.
func (l *List[T]) alloc(v T, next handle) handle {
	if n := len(l.free); n > 0 {
		h := l.free[n-1]
		l.free = l.free[:n-1]
		*l.node(h) = node[T]{value: v, next: next}
		return h
	}
	l.nodes = append(l.nodes, node[T]{value: v, next: next})
	return handle(len(l.nodes))
}

// release clears slot h so the GC can collect its value, then recycles it.
func (l *List[T]) release(h handle) {
	*l.node(h) = node[T]{}
	l.free = append(l.free, h)
}
