package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"lodgely/internal/entities"
	"lodgely/internal/repository"
)

const (
	propCheckIn   = "Check In"
	propCheckOut  = "Check Out"
	propGuests    = "Guests"
	propProductID = "Product ID"
)

// CatalogStore resolves a product to its title and per-night rate.
type CatalogStore interface {
	GetNightlyRate(ctx context.Context, productID int64) (float64, string, error)
}

// DraftOrderStore creates payable draft orders on the platform.
type DraftOrderStore interface {
	CreateDraftOrder(ctx context.Context, email string, item repository.DraftOrderLineItem) (string, error)
}

// ConfirmationSender notifies the guest after a booking is committed.
type ConfirmationSender interface {
	SendBookingConfirmation(order entities.Order, item entities.OrderLineItem, booking entities.Booking)
}

type BookingService struct {
	Ledger  *LedgerService
	Pricing *PricingService
	Catalog CatalogStore
	Orders  DraftOrderStore
	Sender  ConfirmationSender
}

func NewBookingService(ledger *LedgerService, pricing *PricingService, catalog CatalogStore, orders DraftOrderStore, sender ConfirmationSender) *BookingService {
	return &BookingService{
		Ledger:  ledger,
		Pricing: pricing,
		Catalog: catalog,
		Orders:  orders,
		Sender:  sender,
	}
}

// ListBookings returns the ledger verbatim for calendar rendering. It never
// fails; remote errors read as an empty ledger.
func (s *BookingService) ListBookings(ctx context.Context, productID int64) []entities.Booking {
	return s.Ledger.Load(ctx, productID)
}

// ValidateBooking reports whether the candidate range is free on the freshly
// loaded ledger. Advisory only: nothing holds the range until an order is
// confirmed, so a validated range can still lose to a concurrent booking.
func (s *BookingService) ValidateBooking(ctx context.Context, productID int64, candidate entities.Booking) error {
	if Overlaps(candidate, s.Ledger.Load(ctx, productID)) {
		return ErrBookingConflict
	}
	return nil
}

// CreateDraftOrder prices the stay from the catalog and creates a payable
// draft order. The total is always recomputed server side, never taken from
// the request.
func (s *BookingService) CreateDraftOrder(ctx context.Context, productID int64, candidate entities.Booking, guests int, email string) (string, error) {
	rate, title, err := s.Catalog.GetNightlyRate(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("loading catalog price for product %d: %w", productID, err)
	}

	nights, err := s.Pricing.Nights(candidate.Start, candidate.End)
	if err != nil {
		return "", err
	}
	total := s.Pricing.Total(rate, guests, nights)

	checkIn := candidate.Start.Format("2006-01-02")
	checkOut := candidate.End.Format("2006-01-02")
	item := repository.DraftOrderLineItem{
		Title:    fmt.Sprintf("Booking: %s (%s to %s)", title, checkIn, checkOut),
		Price:    strconv.FormatFloat(total, 'f', 2, 64),
		Quantity: 1,
		Properties: []entities.LineItemProperty{
			{Name: propCheckIn, Value: checkIn},
			{Name: propCheckOut, Value: checkOut},
			{Name: propGuests, Value: strconv.Itoa(guests)},
			{Name: propProductID, Value: strconv.FormatInt(productID, 10)},
		},
	}

	return s.Orders.CreateDraftOrder(ctx, email, item)
}

// CommitOrder persists the bookings of a confirmed order. Line items missing
// their booking fields are skipped, as are redelivered or conflicting ones;
// only a store write failure aborts the batch. Returns how many bookings
// were appended.
func (s *BookingService) CommitOrder(ctx context.Context, order entities.Order) (int, error) {
	committed := 0
	for _, item := range order.LineItems {
		checkInRaw := item.Property(propCheckIn)
		checkOutRaw := item.Property(propCheckOut)
		if checkInRaw == "" || checkOutRaw == "" {
			log.Printf("Order %d: line item %q has no check-in/check-out, skipping", order.ID, item.Title)
			continue
		}
		productID := item.ProductRef()
		if productID == 0 {
			log.Printf("Order %d: line item %q has no product reference, skipping", order.ID, item.Title)
			continue
		}

		checkIn, err := entities.ParseDate(checkInRaw)
		if err != nil {
			log.Printf("Order %d: line item %q: %v, skipping", order.ID, item.Title, err)
			continue
		}
		checkOut, err := entities.ParseDate(checkOutRaw)
		if err != nil {
			log.Printf("Order %d: line item %q: %v, skipping", order.ID, item.Title, err)
			continue
		}

		booking := entities.Booking{Start: checkIn, End: checkOut, OrderID: order.ID}
		err = s.Ledger.Append(ctx, productID, booking)
		switch {
		case errors.Is(err, ErrDuplicateOrder):
			log.Printf("Order %d already recorded for product %d, skipping", order.ID, productID)
			continue
		case errors.Is(err, ErrBookingConflict):
			log.Printf("Order %d overlaps an existing booking on product %d, treating as duplicate delivery", order.ID, productID)
			continue
		case err != nil:
			return committed, fmt.Errorf("saving booking for product %d: %w", productID, err)
		}

		committed++
		if s.Sender != nil {
			s.Sender.SendBookingConfirmation(order, item, booking)
		}
	}
	return committed, nil
}
