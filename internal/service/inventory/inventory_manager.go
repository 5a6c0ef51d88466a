package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/repository"
	"go.uber.org/zap"
)

type SeatUseCase interface {
	ListSeats(ctx context.Context, date string) ([]domain.Seat, error)
	FindSeat(ctx context.Context, date string, seatID int) (*domain.Seat, error)
}

// SeatCache stores seat map snapshots by date and version. A version is
// bumped by every mutation of the date's seats, so an entry never goes stale.
type SeatCache interface {
	GetSeats(ctx context.Context, date string, version uint64) ([]domain.Seat, error)
	SetSeats(ctx context.Context, date string, version uint64, seats []domain.Seat) error
	InvalidateSeats(ctx context.Context, date string, version uint64) error
}

// Manager owns the per-date seat inventories held in the store.
type Manager struct {
	store  *repository.Store
	cache  SeatCache
	logger *zap.Logger

	mu       sync.Mutex
	versions map[string]uint64
}

type ManagerOption func(*Manager)

func WithCache(cache SeatCache) ManagerOption {
	return func(m *Manager) {
		m.cache = cache
	}
}

func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

func NewManager(store *repository.Store, opts ...ManagerOption) *Manager {
	m := &Manager{store: store, logger: zap.NewNop(), versions: make(map[string]uint64)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewLayout builds the seat set every date starts with: L1..L10 with ids
// 1..10 on the lower deck, U1..U10 with ids 11..20 on the upper deck.
// Berths are listed in pairs, L1 U1 L2 U2 and so on.
func NewLayout() []*domain.Seat {
	seats := make([]*domain.Seat, 0, 2*domain.SeatsPerDeck)
	for i := 1; i <= domain.SeatsPerDeck; i++ {
		seats = append(seats,
			&domain.Seat{
				ID:     i,
				Number: fmt.Sprintf("L%d", i),
				Type:   domain.SeatTypeLower,
				Price:  domain.LowerSeatPrice,
			},
			&domain.Seat{
				ID:     domain.SeatsPerDeck + i,
				Number: fmt.Sprintf("U%d", i),
				Type:   domain.SeatTypeUpper,
				Price:  domain.UpperSeatPrice,
			},
		)
	}
	return seats
}

// GetOrCreate returns the live inventory of date, creating it on first
// reference. Creation needs a writable transaction.
func (m *Manager) GetOrCreate(tx *repository.Tx, date string) []*domain.Seat {
	if seats, ok := tx.Inventory(date); ok {
		return seats
	}
	seats := NewLayout()
	tx.PutInventory(date, seats)
	m.logger.Debug("inventory created", zap.String("date", date), zap.Int("seats", len(seats)))
	return seats
}

// ListSeats returns a snapshot of the seats for date. The snapshot and its
// version are taken under the store lock; the cache is written after the
// lock is released.
func (m *Manager) ListSeats(ctx context.Context, date string) ([]domain.Seat, error) {
	if m.cache != nil {
		cached, err := m.cache.GetSeats(ctx, date, m.version(date))
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			m.logger.Warn("seat cache read failed", zap.String("date", date), zap.Error(err))
		}
	}

	var (
		out     []domain.Seat
		version uint64
	)
	err := m.store.View(ctx, func(tx *repository.Tx) error {
		if seats, ok := tx.Inventory(date); ok {
			out, version = snapshot(seats), m.version(date)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		err = m.store.Update(ctx, func(tx *repository.Tx) error {
			out, version = snapshot(m.GetOrCreate(tx, date)), m.version(date)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if m.cache != nil {
		if err := m.cache.SetSeats(ctx, date, version, out); err != nil {
			m.logger.Warn("seat cache write failed", zap.String("date", date), zap.Error(err))
		}
	}
	return out, nil
}

func (m *Manager) FindSeat(ctx context.Context, date string, seatID int) (*domain.Seat, error) {
	seats, err := m.ListSeats(ctx, date)
	if err != nil {
		return nil, err
	}
	for i := range seats {
		if seats[i].ID == seatID {
			return &seats[i], nil
		}
	}
	return nil, &domain.SeatError{SeatID: seatID, Err: domain.ErrSeatNotFound}
}

// Reserve marks every requested seat occupied, or none of them. A seat id
// repeated within one request counts as already booked.
func (m *Manager) Reserve(tx *repository.Tx, date string, seatIDs []int) ([]domain.Seat, error) {
	seats := m.GetOrCreate(tx, date)

	selected := make([]*domain.Seat, 0, len(seatIDs))
	seen := make(map[int]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		seat := lookup(seats, id)
		if seat == nil {
			return nil, &domain.SeatError{SeatID: id, Err: domain.ErrSeatNotFound}
		}
		if _, dup := seen[id]; dup || seat.IsBooked {
			return nil, &domain.SeatError{SeatID: id, Number: seat.Number, Err: domain.ErrSeatAlreadyBooked}
		}
		seen[id] = struct{}{}
		selected = append(selected, seat)
	}

	for _, seat := range selected {
		seat.IsBooked = true
	}
	if len(selected) > 0 {
		m.bump(date)
	}
	return snapshot(selected), nil
}

// Release frees the given seats. Ids that do not resolve are skipped.
func (m *Manager) Release(tx *repository.Tx, date string, seatIDs []int) int {
	seats, ok := tx.Inventory(date)
	if !ok {
		return 0
	}
	released := 0
	for _, id := range seatIDs {
		if seat := lookup(seats, id); seat != nil {
			seat.IsBooked = false
			released++
		}
	}
	if released > 0 {
		m.bump(date)
	}
	return released
}

// MustHold panics unless every seat id exists in date's inventory and is
// occupied. A live booking that fails this check means the ledger and the
// inventory have diverged.
func (m *Manager) MustHold(tx *repository.Tx, date string, seatIDs []int) {
	seats, ok := tx.Inventory(date)
	if !ok {
		panic(fmt.Sprintf("inventory: no inventory for booked date %q", date))
	}
	for _, id := range seatIDs {
		seat := lookup(seats, id)
		if seat == nil {
			panic(fmt.Sprintf("inventory: booked seat %d missing on %s", id, date))
		}
		if !seat.IsBooked {
			panic(fmt.Sprintf("inventory: booked seat %s is free on %s", seat.Number, date))
		}
	}
}

// Occupancy is the share of booked seats for date, false when the date
// has no inventory yet.
func (m *Manager) Occupancy(tx *repository.Tx, date string) (float64, bool) {
	seats, ok := tx.Inventory(date)
	if !ok || len(seats) == 0 {
		return 0, false
	}
	booked := 0
	for _, s := range seats {
		if s.IsBooked {
			booked++
		}
	}
	return float64(booked) / float64(len(seats)), true
}

// Invalidate drops the cached seat map superseded by the last mutation of
// date. Readers never ask for an old version, so a failed delete only
// leaves an entry to expire with its TTL.
func (m *Manager) Invalidate(ctx context.Context, date string) {
	if m.cache == nil {
		return
	}
	v := m.version(date)
	if v == 0 {
		return
	}
	if err := m.cache.InvalidateSeats(ctx, date, v-1); err != nil {
		m.logger.Warn("seat cache invalidation failed", zap.String("date", date), zap.Error(err))
	}
}

// version counts the mutations applied to the seats of date.
func (m *Manager) version(date string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[date]
}

// bump is called with the store write lock held.
func (m *Manager) bump(date string) {
	m.mu.Lock()
	m.versions[date]++
	m.mu.Unlock()
}

func lookup(seats []*domain.Seat, id int) *domain.Seat {
	for _, s := range seats {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func snapshot(seats []*domain.Seat) []domain.Seat {
	out := make([]domain.Seat, 0, len(seats))
	for _, s := range seats {
		out = append(out, *s)
	}
	return out
}

var _ SeatUseCase = (*Manager)(nil)
