package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intCursor int

func (c intCursor) LessThan(other intCursor) bool {
	return c < other
}

type intItem int

func (i intItem) Cursor() intCursor {
	return intCursor(i)
}

func cursorPtr(n int) *intCursor {
	c := intCursor(n)
	return &c
}

func TestWindow(t *testing.T) {
	items := []intItem{1, 2, 2, 3, 5}

	for name, tc := range map[string]struct {
		After, Before *intCursor
		Lo, Hi        int
	}{
		"Unbounded":     {Lo: 0, Hi: 5},
		"After":         {After: cursorPtr(2), Lo: 3, Hi: 5},
		"AfterMissing":  {After: cursorPtr(4), Lo: 4, Hi: 5},
		"Before":        {Before: cursorPtr(2), Lo: 0, Hi: 1},
		"BeforeMissing": {Before: cursorPtr(4), Lo: 0, Hi: 4},
		"Both":          {After: cursorPtr(1), Before: cursorPtr(5), Lo: 1, Hi: 4},
		"Inverted":      {After: cursorPtr(5), Before: cursorPtr(1), Lo: 5, Hi: 5},
	} {
		t.Run(name, func(t *testing.T) {
			lo, hi := Window(items, tc.After, tc.Before)
			assert.Equal(t, tc.Lo, lo)
			assert.Equal(t, tc.Hi, hi)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []intItem{1, 2, 3, 4, 5}

	for name, tc := range map[string]struct {
		After, Before   *intCursor
		Limit           int
		Expected        []intItem
		HasPreviousPage bool
		HasNextPage     bool
	}{
		"All": {
			Expected: []intItem{1, 2, 3, 4, 5},
		},
		"First": {
			Limit:       2,
			Expected:    []intItem{1, 2},
			HasNextPage: true,
		},
		"FirstAfter": {
			After:           cursorPtr(2),
			Limit:           2,
			Expected:        []intItem{3, 4},
			HasPreviousPage: true,
			HasNextPage:     true,
		},
		"FirstAfterExhausted": {
			After:           cursorPtr(3),
			Limit:           5,
			Expected:        []intItem{4, 5},
			HasPreviousPage: true,
		},
		"FirstBefore": {
			Before:      cursorPtr(5),
			Limit:       4,
			Expected:    []intItem{1, 2, 3, 4},
			HasNextPage: false,
		},
		"Last": {
			Limit:           -2,
			Expected:        []intItem{4, 5},
			HasPreviousPage: true,
		},
		"LastBefore": {
			Before:          cursorPtr(4),
			Limit:           -2,
			Expected:        []intItem{2, 3},
			HasPreviousPage: true,
			HasNextPage:     true,
		},
		"LastBeforeExhausted": {
			Before:      cursorPtr(3),
			Limit:       -5,
			Expected:    []intItem{1, 2},
			HasNextPage: true,
		},
		"AfterAndBefore": {
			After:           cursorPtr(1),
			Before:          cursorPtr(5),
			Expected:        []intItem{2, 3, 4},
			HasPreviousPage: true,
			HasNextPage:     true,
		},
		"Empty": {
			After:           cursorPtr(5),
			HasPreviousPage: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			page, info := Paginate(items, tc.After, tc.Before, tc.Limit)
			assert.Equal(t, tc.HasPreviousPage, info.HasPreviousPage)
			assert.Equal(t, tc.HasNextPage, info.HasNextPage)
			if len(tc.Expected) == 0 {
				assert.Empty(t, page)
				assert.Nil(t, info.StartCursor)
				assert.Nil(t, info.EndCursor)
				return
			}
			assert.Equal(t, tc.Expected, page)
			require.NotNil(t, info.StartCursor)
			require.NotNil(t, info.EndCursor)
			assert.Equal(t, tc.Expected[0].Cursor(), *info.StartCursor)
			assert.Equal(t, tc.Expected[len(tc.Expected)-1].Cursor(), *info.EndCursor)
		})
	}
}

func TestPaginate_Walk(t *testing.T) {
	var items []intItem
	for i := 1; i <= 10; i++ {
		items = append(items, intItem(i))
	}

	var seen []intItem
	var after *intCursor
	for {
		page, info := Paginate(items, after, nil, 3)
		seen = append(seen, page...)
		if !info.HasNextPage {
			break
		}
		after = info.EndCursor
	}
	assert.Equal(t, items, seen)

	seen = nil
	var before *intCursor
	for {
		page, info := Paginate(items, nil, before, -4)
		seen = append(append([]intItem(nil), page...), seen...)
		if !info.HasPreviousPage {
			break
		}
		before = info.StartCursor
	}
	assert.Equal(t, items, seen)
}
