package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/Domenick1991/busbooking/internal/domain"
)

// Store owns every seat inventory and the booking ledger of the process.
// All access goes through Update or View so that multi-step operations
// run under a single lock.
type Store struct {
	mu          sync.RWMutex
	inventories map[string][]*domain.Seat
	bookings    map[string]*domain.Booking
	order       []string
}

func NewStore() *Store {
	return &Store{
		inventories: make(map[string][]*domain.Seat),
		bookings:    make(map[string]*domain.Booking),
	}
}

// Update runs fn with exclusive access to the store.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{store: s, writable: true}
	defer tx.close()
	return fn(tx)
}

// View runs fn with shared access. Writes through the Tx panic.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx := &Tx{store: s}
	defer tx.close()
	return fn(tx)
}

// Tx is valid only inside the Update or View callback that received it.
type Tx struct {
	store    *Store
	writable bool
	closed   bool
}

func (tx *Tx) close() { tx.closed = true }

func (tx *Tx) check(write bool) {
	if tx.closed {
		panic("repository: transaction used after it finished")
	}
	if write && !tx.writable {
		panic("repository: write in read-only transaction")
	}
}

func (tx *Tx) Writable() bool { return tx.writable }

// Inventory returns the live seats of date. The pointers may only be
// mutated inside a writable transaction.
func (tx *Tx) Inventory(date string) ([]*domain.Seat, bool) {
	tx.check(false)
	seats, ok := tx.store.inventories[date]
	return seats, ok
}

func (tx *Tx) PutInventory(date string, seats []*domain.Seat) {
	tx.check(true)
	if _, ok := tx.store.inventories[date]; ok {
		panic(fmt.Sprintf("repository: inventory for %q already exists", date))
	}
	tx.store.inventories[date] = seats
}

func (tx *Tx) Booking(id string) (*domain.Booking, bool) {
	tx.check(false)
	b, ok := tx.store.bookings[id]
	return b, ok
}

func (tx *Tx) PutBooking(b *domain.Booking) {
	tx.check(true)
	if _, ok := tx.store.bookings[b.ID]; ok {
		panic(fmt.Sprintf("repository: booking %q already exists", b.ID))
	}
	tx.store.bookings[b.ID] = b
	tx.store.order = append(tx.store.order, b.ID)
}

func (tx *Tx) DeleteBooking(id string) bool {
	tx.check(true)
	if _, ok := tx.store.bookings[id]; !ok {
		return false
	}
	delete(tx.store.bookings, id)
	for i, v := range tx.store.order {
		if v == id {
			tx.store.order = append(tx.store.order[:i], tx.store.order[i+1:]...)
			break
		}
	}
	return true
}

// Bookings returns live bookings in insertion order.
func (tx *Tx) Bookings() []*domain.Booking {
	tx.check(false)
	out := make([]*domain.Booking, 0, len(tx.store.order))
	for _, id := range tx.store.order {
		out = append(out, tx.store.bookings[id])
	}
	return out
}
