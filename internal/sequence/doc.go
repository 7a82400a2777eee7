// Package sequence implements List, the ordered position-addressable
// container every flix queue and catalog is built on.
//
// STORAGE:
//
// A List is a singly-linked chain stored in an arena: nodes live in a slice
// and refer to their successor by an integer handle instead of a pointer.
// Removed slots go on a free list and are reused by later inserts. The list
// keeps head and tail handles, so Append is O(1); positional operations walk
// from the head and are O(n).
//
// Handle 0 is the nil handle. Slot h lives at nodes[h-1], which keeps the
// zero List usable without a constructor.
//
// CURSOR:
//
// Each List owns exactly one forward cursor (ResetCursor, HasNext, Next).
// It is the only iteration mechanism. The cursor is shared by every caller
// of the list, so a traversal left unfinished is observable by the next
// caller that skips ResetCursor. Always reset before an independent
// traversal.
//
// Indexed access (At, Len) never moves the cursor. Structural mutation
// (InsertAt, Append, RemoveAt, MoveAheadOne) parks the cursor in the
// exhausted state; traversal must be reset before it can continue.
//
// Lists are not safe for concurrent use.
package sequence
