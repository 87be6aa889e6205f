package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"lodgely/internal/entities"
)

const (
	bookingNamespace = "booking"
	bookingKey       = "booked_dates"
	metafieldType    = "json"
)

type metafield struct {
	ID        int64  `json:"id,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Key       string `json:"key,omitempty"`
	Value     string `json:"value"`
	Type      string `json:"type,omitempty"`
}

// MetafieldRepository stores each product's booking ledger as a JSON
// metafield on the product itself. There is no other datastore.
type MetafieldRepository struct {
	Client *ShopifyClient
}

func NewMetafieldRepository(client *ShopifyClient) *MetafieldRepository {
	return &MetafieldRepository{Client: client}
}

// GetBookings returns the stored ledger for a product. A product without the
// booking metafield yields an empty ledger and no error; transport failures
// and malformed stored JSON are returned as errors for the caller to decide.
func (r *MetafieldRepository) GetBookings(ctx context.Context, productID int64) ([]entities.Booking, error) {
	field, err := r.findBookingMetafield(ctx, productID)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, nil
	}

	var bookings []entities.Booking
	if err := json.Unmarshal([]byte(field.Value), &bookings); err != nil {
		return nil, fmt.Errorf("parsing booking metafield for product %d: %w", productID, err)
	}
	return bookings, nil
}

// SaveBookings replaces the product's stored ledger with the given sequence,
// updating the existing metafield when one exists and creating it otherwise.
func (r *MetafieldRepository) SaveBookings(ctx context.Context, productID int64, bookings []entities.Booking) error {
	value, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encoding ledger for product %d: %w", productID, err)
	}

	existing, err := r.findBookingMetafield(ctx, productID)
	if err != nil {
		return err
	}

	if existing != nil {
		payload := map[string]metafield{"metafield": {
			ID:    existing.ID,
			Value: string(value),
			Type:  metafieldType,
		}}
		return r.Client.do(ctx, http.MethodPut, fmt.Sprintf("/metafields/%d.json", existing.ID), payload, nil)
	}

	payload := map[string]metafield{"metafield": {
		Namespace: bookingNamespace,
		Key:       bookingKey,
		Value:     string(value),
		Type:      metafieldType,
	}}
	return r.Client.do(ctx, http.MethodPost, fmt.Sprintf("/products/%d/metafields.json", productID), payload, nil)
}

func (r *MetafieldRepository) findBookingMetafield(ctx context.Context, productID int64) (*metafield, error) {
	var out struct {
		Metafields []metafield `json:"metafields"`
	}
	err := r.Client.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/metafields.json", productID), nil, &out)
	if err != nil {
		return nil, err
	}
	for i := range out.Metafields {
		if out.Metafields[i].Namespace == bookingNamespace && out.Metafields[i].Key == bookingKey {
			return &out.Metafields[i], nil
		}
	}
	return nil, nil
}
