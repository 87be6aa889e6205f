package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"lodgely/internal/entities"
	"lodgely/internal/service"
)

type OrderWebhookHandler struct {
	bookingService *service.BookingService
}

func NewOrderWebhookHandler(bookingService *service.BookingService) *OrderWebhookHandler {
	return &OrderWebhookHandler{bookingService: bookingService}
}

// HandleOrdersCreate persists the bookings of a confirmed order. Individual
// line items missing their booking fields, or already committed by an
// earlier delivery, are skipped; a payload with no line items at all is
// rejected.
func (h *OrderWebhookHandler) HandleOrdersCreate(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(1 << 20)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading webhook body: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	var order entities.Order
	if err := json.Unmarshal(payload, &order); err != nil {
		log.Printf("Error parsing orders/create payload: %v", err)
		http.Error(w, "Invalid order payload", http.StatusBadRequest)
		return
	}
	if len(order.LineItems) == 0 {
		log.Printf("Order %d has no line items, rejecting", order.ID)
		http.Error(w, "Order has no line items", http.StatusBadRequest)
		return
	}

	committed, err := h.bookingService.CommitOrder(r.Context(), order)
	if err != nil {
		log.Printf("Error committing order %d: %v", order.ID, err)
		http.Error(w, "Could not persist bookings", http.StatusInternalServerError)
		return
	}

	log.Printf("Order %d: committed %d of %d line items", order.ID, committed, len(order.LineItems))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
