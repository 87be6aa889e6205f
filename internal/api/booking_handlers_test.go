package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lodgely/internal/entities"
	"lodgely/internal/repository"
	"lodgely/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes for the stores behind the booking service.
type stubLedgerStore struct {
	ledgers map[int64][]entities.Booking
	getErr  error
}

func (s *stubLedgerStore) GetBookings(ctx context.Context, productID int64) ([]entities.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.ledgers[productID], nil
}

func (s *stubLedgerStore) SaveBookings(ctx context.Context, productID int64, bookings []entities.Booking) error {
	if s.ledgers == nil {
		s.ledgers = make(map[int64][]entities.Booking)
	}
	s.ledgers[productID] = bookings
	return nil
}

type stubCatalog struct {
	rate  float64
	title string
	err   error
}

func (s *stubCatalog) GetNightlyRate(ctx context.Context, productID int64) (float64, string, error) {
	return s.rate, s.title, s.err
}

type stubDraftOrders struct {
	invoiceURL string
	err        error
	lastItem   repository.DraftOrderLineItem
}

func (s *stubDraftOrders) CreateDraftOrder(ctx context.Context, email string, item repository.DraftOrderLineItem) (string, error) {
	s.lastItem = item
	return s.invoiceURL, s.err
}

type stubSender struct{ sent int }

func (s *stubSender) SendBookingConfirmation(order entities.Order, item entities.OrderLineItem, booking entities.Booking) {
	s.sent++
}

func utcDay(s string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, time.UTC)
	return t
}

func newTestHandler(store *stubLedgerStore, catalog *stubCatalog, orders *stubDraftOrders) *BookingHandler {
	svc := service.NewBookingService(
		service.NewLedgerService(store),
		service.NewPricingService(),
		catalog,
		orders,
		&stubSender{},
	)
	return NewBookingHandler(svc)
}

func TestGetAvailability(t *testing.T) {
	store := &stubLedgerStore{ledgers: map[int64][]entities.Booking{
		42: {{Start: utcDay("2024-01-01"), End: utcDay("2024-01-05")}},
	}}
	h := newTestHandler(store, &stubCatalog{}, &stubDraftOrders{})

	req := httptest.NewRequest(http.MethodGet, "/availability?product_id=42", nil)
	rec := httptest.NewRecorder()
	h.GetAvailability(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, utcDay("2024-01-01"), resp.Bookings[0].Start)
}

func TestGetAvailabilityEmptyCases(t *testing.T) {
	tests := []struct {
		name   string
		target string
		store  *stubLedgerStore
	}{
		{"missing product_id", "/availability", &stubLedgerStore{}},
		{"non-numeric product_id", "/availability?product_id=abc", &stubLedgerStore{}},
		{"unknown product", "/availability?product_id=99", &stubLedgerStore{}},
		{"remote error", "/availability?product_id=42", &stubLedgerStore{getErr: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(tt.store, &stubCatalog{}, &stubDraftOrders{})
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			h.GetAvailability(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"bookings": []}`, rec.Body.String())
		})
	}
}

func TestValidateBookingHandler(t *testing.T) {
	store := &stubLedgerStore{ledgers: map[int64][]entities.Booking{
		7: {{Start: utcDay("2024-01-01"), End: utcDay("2024-01-05")}},
	}}
	h := newTestHandler(store, &stubCatalog{}, &stubDraftOrders{})

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"free range", `{"productId":7,"checkin":"2024-01-05","checkout":"2024-01-08"}`, http.StatusOK},
		{"conflicting range", `{"productId":7,"checkin":"2024-01-04","checkout":"2024-01-06"}`, http.StatusBadRequest},
		{"missing fields", `{"productId":7}`, http.StatusBadRequest},
		{"inverted range", `{"productId":7,"checkin":"2024-01-08","checkout":"2024-01-05"}`, http.StatusBadRequest},
		{"garbage body", `{{{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/validate-booking", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ValidateBooking(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.JSONEq(t, `{"available": true}`, rec.Body.String())
			} else {
				var resp map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp["error"])
			}
		})
	}
}

func TestCalculatePriceHandler(t *testing.T) {
	h := newTestHandler(&stubLedgerStore{}, &stubCatalog{}, &stubDraftOrders{})

	body := `{"basePrice":100,"guests":2,"checkin":"2024-01-01","checkout":"2024-01-04"}`
	req := httptest.NewRequest(http.MethodPost, "/calculate-price", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CalculatePrice(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CalculatePriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, 600.0, resp.TotalPrice)
}

func TestCalculatePriceHandlerRejectsBadInput(t *testing.T) {
	h := newTestHandler(&stubLedgerStore{}, &stubCatalog{}, &stubDraftOrders{})

	tests := []struct {
		name string
		body string
	}{
		{"missing basePrice", `{"guests":2,"checkin":"2024-01-01","checkout":"2024-01-04"}`},
		{"zero guests", `{"basePrice":100,"guests":0,"checkin":"2024-01-01","checkout":"2024-01-04"}`},
		{"checkout before checkin", `{"basePrice":100,"guests":2,"checkin":"2024-01-04","checkout":"2024-01-01"}`},
		{"unparsable date", `{"basePrice":100,"guests":2,"checkin":"someday","checkout":"2024-01-04"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/calculate-price", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.CalculatePrice(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateDraftOrderHandler(t *testing.T) {
	orders := &stubDraftOrders{invoiceURL: "https://shop.example/invoice/55"}
	h := newTestHandler(&stubLedgerStore{}, &stubCatalog{rate: 100, title: "Lakeside Cabin"}, orders)

	// The client-sent totalPrice is ignored; the server reprices from the catalog.
	body := `{"productId":7,"checkin":"2024-01-01","checkout":"2024-01-04","guests":2,"email":"guest@example.com","totalPrice":1}`
	req := httptest.NewRequest(http.MethodPost, "/create-draft-order", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateDraftOrder(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"invoiceUrl": "https://shop.example/invoice/55"}`, rec.Body.String())
	assert.Equal(t, "600.00", orders.lastItem.Price)
}

func TestCreateDraftOrderHandlerErrors(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		h := newTestHandler(&stubLedgerStore{}, &stubCatalog{rate: 100}, &stubDraftOrders{})
		body := `{"productId":7,"checkin":"2024-01-01","checkout":"2024-01-04","guests":2,"email":"not-an-email"}`
		req := httptest.NewRequest(http.MethodPost, "/create-draft-order", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.CreateDraftOrder(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("platform failure", func(t *testing.T) {
		h := newTestHandler(&stubLedgerStore{}, &stubCatalog{err: errors.New("upstream 500")}, &stubDraftOrders{})
		body := `{"productId":7,"checkin":"2024-01-01","checkout":"2024-01-04","guests":2,"email":"guest@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/create-draft-order", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.CreateDraftOrder(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
