package api

import "lodgely/internal/entities"

// Availability
type AvailabilityResponse struct {
	Bookings []entities.Booking `json:"bookings"`
}

// Validation
type ValidateBookingRequest struct {
	ProductID int64  `json:"productId" validate:"required"`
	CheckIn   string `json:"checkin" validate:"required"`
	CheckOut  string `json:"checkout" validate:"required"`
}
type ValidateBookingResponse struct {
	Available bool `json:"available"`
}

// Pricing
type CalculatePriceRequest struct {
	BasePrice float64 `json:"basePrice" validate:"required,gt=0"`
	Guests    int     `json:"guests" validate:"required,gte=1"`
	CheckIn   string  `json:"checkin" validate:"required"`
	CheckOut  string  `json:"checkout" validate:"required"`
}
type CalculatePriceResponse struct {
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"totalPrice"`
}

// Draft order
type CreateDraftOrderRequest struct {
	ProductID int64  `json:"productId" validate:"required"`
	CheckIn   string `json:"checkin" validate:"required"`
	CheckOut  string `json:"checkout" validate:"required"`
	Guests    int    `json:"guests" validate:"required,gte=1"`
	Email     string `json:"email" validate:"required,email"`
	// Accepted for older storefront clients; the server recomputes the total
	// from the catalog and never reads this.
	TotalPrice float64 `json:"totalPrice,omitempty"`
}
type CreateDraftOrderResponse struct {
	InvoiceURL string `json:"invoiceUrl"`
}
