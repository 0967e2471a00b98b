// Package pagination slices cursor-ordered collections into pages and describes the neighboring
// pages as Siren navigation links.
package pagination

import (
	"sort"
)

// Cursor is the position of an item within a collection.
type Cursor[T any] interface {
	LessThan(T) bool
}

// Item is an element of a collection ordered by its cursor.
type Item[C Cursor[C]] interface {
	Cursor() C
}

// PageInfo describes where a page sits within its collection.
type PageInfo[C Cursor[C]] struct {
	HasPreviousPage bool
	HasNextPage     bool

	// The cursors of the first and last items on the page. Both are nil if the page is empty.
	StartCursor *C
	EndCursor   *C
}

// Window returns the bounds of the items in sorted that lie strictly after the after cursor and
// strictly before the before cursor. Either cursor may be nil. sorted must be in cursor order.
func Window[I Item[C], C Cursor[C]](sorted []I, after, before *C) (lo, hi int) {
	hi = len(sorted)
	if after != nil {
		lo = sort.Search(len(sorted), func(i int) bool {
			return (*after).LessThan(sorted[i].Cursor())
		})
	}
	if before != nil {
		hi = sort.Search(len(sorted), func(i int) bool {
			return !sorted[i].Cursor().LessThan(*before)
		})
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Paginate returns a page of sorted, which must be in cursor order. The returned items share
// sorted's backing array.
//
// Limit is the maximum number of items to return. If it is negative, the last -limit items
// between the cursors are returned instead of the first. If it is zero, there is no limit.
//
// With a positive limit, HasNextPage only reports whether the limit cut the page short, and with a
// negative limit the same goes for HasPreviousPage. Otherwise each reports whether any items were
// excluded by the corresponding cursor.
func Paginate[I Item[C], C Cursor[C]](sorted []I, after, before *C, limit int) ([]I, PageInfo[C]) {
	lo, hi := Window(sorted, after, before)

	var info PageInfo[C]
	info.HasPreviousPage = lo > 0
	info.HasNextPage = hi < len(sorted)

	switch {
	case limit > 0:
		info.HasNextPage = hi-lo > limit
		if info.HasNextPage {
			hi = lo + limit
		}
	case limit < 0:
		info.HasPreviousPage = hi-lo > -limit
		if info.HasPreviousPage {
			lo = hi + limit
		}
	}

	page := sorted[lo:hi]
	if len(page) > 0 {
		start, end := page[0].Cursor(), page[len(page)-1].Cursor()
		info.StartCursor, info.EndCursor = &start, &end
	}
	return page, info
}
