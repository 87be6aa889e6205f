package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"lodgely/internal/entities"
)

var (
	// ErrBookingConflict means the candidate range overlaps a stored booking.
	ErrBookingConflict = errors.New("requested dates overlap an existing booking")
	// ErrDuplicateOrder means a booking from the same order is already stored.
	ErrDuplicateOrder = errors.New("booking for this order already recorded")
)

// LedgerStore is the remote store holding one booking sequence per product.
type LedgerStore interface {
	GetBookings(ctx context.Context, productID int64) ([]entities.Booking, error)
	SaveBookings(ctx context.Context, productID int64, bookings []entities.Booking) error
}

// LedgerService maintains the per-product booking ledgers. Appends for the
// same product are serialized through a per-product mutex so the
// load-check-write cycle cannot lose a concurrent write within this process.
type LedgerService struct {
	Store LedgerStore

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewLedgerService(store LedgerStore) *LedgerService {
	return &LedgerService{
		Store: store,
		locks: make(map[int64]*sync.Mutex),
	}
}

// Overlaps reports whether candidate intersects any booking in ledger.
// Intervals are half-open, so a range starting exactly at another's end does
// not conflict.
func Overlaps(candidate entities.Booking, ledger []entities.Booking) bool {
	for _, existing := range ledger {
		if candidate.Start.Before(existing.End) && existing.Start.Before(candidate.End) {
			return true
		}
	}
	return false
}

// Load returns the current ledger for a product. Every retrieval failure,
// including malformed stored data, reads as an empty ledger: availability
// must keep rendering even when the platform is unreachable.
func (s *LedgerService) Load(ctx context.Context, productID int64) []entities.Booking {
	bookings, err := s.Store.GetBookings(ctx, productID)
	if err != nil {
		log.Printf("Ledger load failed for product %d, treating as empty: %v", productID, err)
		return nil
	}
	return bookings
}

// Append writes the ledger back with candidate added. It re-reads the ledger
// under the product lock, refuses duplicates of an already-stored order id,
// and refuses overlapping ranges.
func (s *LedgerService) Append(ctx context.Context, productID int64, candidate entities.Booking) error {
	lock := s.productLock(productID)
	lock.Lock()
	defer lock.Unlock()

	ledger := s.Load(ctx, productID)

	if candidate.OrderID != 0 {
		for _, existing := range ledger {
			if existing.OrderID == candidate.OrderID {
				return ErrDuplicateOrder
			}
		}
	}
	if Overlaps(candidate, ledger) {
		return ErrBookingConflict
	}

	return s.Store.SaveBookings(ctx, productID, append(ledger, candidate))
}

func (s *LedgerService) productLock(productID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[productID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[productID] = lock
	}
	return lock
}
