package service

import (
	"fmt"
	"time"
)

// PricingService does the booking price arithmetic. The per-night rate comes
// from the caller; this service owns only nights counting and the total.
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

// Nights counts the nights between check-in and check-out, rounding a
// partial final day up.
func (s *PricingService) Nights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, fmt.Errorf("check-out must be after check-in")
	}
	d := checkOut.Sub(checkIn)
	nights := int(d.Hours() / 24)
	if d.Hours() > float64(nights*24) {
		nights++
	}
	return nights, nil
}

// Total is nightly rate times guests times nights.
func (s *PricingService) Total(nightlyRate float64, guests, nights int) float64 {
	return nightlyRate * float64(guests) * float64(nights)
}
