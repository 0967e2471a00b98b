package main

import (
	"context"
	"sync"
	"time"

	"github.com/ccbrown/siren-fu/pagination"
)

type Order struct {
	Number       int
	ItemCount    int
	Status       string
	CustomerID   string
	CustomerName string
	CreatedAt    time.Time
}

type OrderCursor struct {
	CreatedAt time.Time
	Number    int
}

func (c OrderCursor) LessThan(other OrderCursor) bool {
	if c.CreatedAt.Equal(other.CreatedAt) {
		return c.Number < other.Number
	}
	return c.CreatedAt.Before(other.CreatedAt)
}

func (o *Order) Cursor() OrderCursor {
	return OrderCursor{
		CreatedAt: o.CreatedAt,
		Number:    o.Number,
	}
}

// Store keeps orders in memory, ordered by creation time, and notifies subscribers of changes.
type Store struct {
	mutex       sync.Mutex
	orders      []*Order
	subscribers map[int]map[chan Order]struct{}
}

// NewStore returns a store seeded with orders numbered 1 through count, created a minute apart.
func NewStore(count int) *Store {
	s := &Store{
		subscribers: map[int]map[chan Order]struct{}{},
	}
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= count; i++ {
		s.orders = append(s.orders, &Order{
			Number:       i,
			ItemCount:    3,
			Status:       "pending",
			CustomerID:   "pj123",
			CustomerName: "Peter Joseph",
			CreatedAt:    start.Add(time.Duration(i) * time.Minute),
		})
	}
	return s
}

func (s *Store) Order(number int) (Order, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if i := s.index(number); i >= 0 {
		return *s.orders[i], true
	}
	return Order{}, false
}

func (s *Store) index(number int) int {
	for i, o := range s.orders {
		if o.Number == number {
			return i
		}
	}
	return -1
}

// Neighbors returns the numbers of the orders created immediately before and after the given one.
// Zero means there is no such order.
func (s *Store) Neighbors(number int) (prev, next int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	i := s.index(number)
	if i < 0 {
		return 0, 0
	}
	if i > 0 {
		prev = s.orders[i-1].Number
	}
	if i+1 < len(s.orders) {
		next = s.orders[i+1].Number
	}
	return prev, next
}

// Orders returns a page of orders. If limit is negative, the page is taken from the end of the
// range. Orders are kept in cursor order, so no sorting is needed.
func (s *Store) Orders(after, before *OrderCursor, limit int) ([]Order, pagination.PageInfo[OrderCursor]) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	page, info := pagination.Paginate(s.orders, after, before, limit)
	ret := make([]Order, len(page))
	for i, o := range page {
		ret[i] = *o
	}
	return ret, info
}

// AddItems adds to the order's item count and notifies subscribers.
func (s *Store) AddItems(number, quantity int) (Order, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	i := s.index(number)
	if i < 0 {
		return Order{}, false
	}
	s.orders[i].ItemCount += quantity
	order := *s.orders[i]
	for ch := range s.subscribers[number] {
		select {
		case ch <- order:
		default:
			// slow subscribers miss intermediate states
		}
	}
	return order, true
}

// Subscribe returns a channel that receives the order's current state followed by every change
// until ctx is done.
func (s *Store) Subscribe(ctx context.Context, number int) (<-chan Order, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	i := s.index(number)
	if i < 0 {
		return nil, false
	}

	ch := make(chan Order, 16)
	ch <- *s.orders[i]
	if s.subscribers[number] == nil {
		s.subscribers[number] = map[chan Order]struct{}{}
	}
	s.subscribers[number][ch] = struct{}{}

	go func() {
		<-ctx.Done()
		s.mutex.Lock()
		defer s.mutex.Unlock()
		delete(s.subscribers[number], ch)
		close(ch)
	}()

	return ch, true
}
