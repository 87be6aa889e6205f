package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"lodgely/internal/entities"
	apperrors "lodgely/internal/errors"
	"lodgely/internal/service"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// GetAvailability returns the product's bookings verbatim for calendar
// rendering. A missing or unparsable product id and any remote failure all
// answer with an empty list; this endpoint never blocks the storefront.
func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	resp := AvailabilityResponse{Bookings: []entities.Booking{}}

	productID, err := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)
	if err == nil {
		if bookings := h.Service.ListBookings(r.Context(), productID); bookings != nil {
			resp.Bookings = bookings
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *BookingHandler) ValidateBooking(w http.ResponseWriter, r *http.Request) {
	var req ValidateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ErrBadRequest("Invalid request"))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.ErrBadRequest("productId, checkin and checkout are required"))
		return
	}

	candidate, err := parseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		writeError(w, apperrors.ErrBadRequest(err.Error()))
		return
	}

	if err := h.Service.ValidateBooking(r.Context(), req.ProductID, candidate); err != nil {
		if errors.Is(err, service.ErrBookingConflict) {
			writeError(w, apperrors.ErrBadRequest("Selected dates are no longer available"))
			return
		}
		writeError(w, apperrors.NewHTTPError(http.StatusInternalServerError, "Error validating booking"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ValidateBookingResponse{Available: true})
}

func (h *BookingHandler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	var req CalculatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ErrBadRequest("Invalid request"))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.ErrBadRequest("basePrice, guests, checkin and checkout are required"))
		return
	}

	candidate, err := parseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		writeError(w, apperrors.ErrBadRequest(err.Error()))
		return
	}

	nights, err := h.Service.Pricing.Nights(candidate.Start, candidate.End)
	if err != nil {
		writeError(w, apperrors.ErrBadRequest(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CalculatePriceResponse{
		Nights:     nights,
		TotalPrice: h.Service.Pricing.Total(req.BasePrice, req.Guests, nights),
	})
}

func (h *BookingHandler) CreateDraftOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ErrBadRequest("Invalid request"))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.ErrBadRequest("productId, checkin, checkout, guests and email are required"))
		return
	}

	candidate, err := parseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		writeError(w, apperrors.ErrBadRequest(err.Error()))
		return
	}

	invoiceURL, err := h.Service.CreateDraftOrder(r.Context(), req.ProductID, candidate, req.Guests, req.Email)
	if err != nil {
		log.Printf("Error creating draft order for product %d: %v", req.ProductID, err)
		writeError(w, apperrors.NewHTTPError(http.StatusInternalServerError, "Could not create draft order"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CreateDraftOrderResponse{InvoiceURL: invoiceURL})
}

func parseRange(checkIn, checkOut string) (entities.Booking, error) {
	start, err := entities.ParseDate(checkIn)
	if err != nil {
		return entities.Booking{}, err
	}
	end, err := entities.ParseDate(checkOut)
	if err != nil {
		return entities.Booking{}, err
	}
	if !end.After(start) {
		return entities.Booking{}, errTimeOrder
	}
	return entities.Booking{Start: start, End: end}, nil
}

var errTimeOrder = errors.New("checkout must be after checkin")

func writeError(w http.ResponseWriter, httpErr *apperrors.HTTPError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Code)
	json.NewEncoder(w).Encode(map[string]string{"error": httpErr.Message})
}
