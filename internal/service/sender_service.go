package service

import (
	"fmt"
	"log"
	"time"

	"lodgely/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// SendBookingConfirmation emails the guest that their booking is confirmed
// and, when the order carries a phone number, sends an SMS as well. Both are
// best effort: failures are logged and never surfaced to the webhook caller.
func (s *SenderService) SendBookingConfirmation(order entities.Order, item entities.OrderLineItem, booking entities.Booking) {
	if order.Email == "" {
		log.Printf("Order %d has no customer email, skipping confirmation email", order.ID)
		return
	}

	emailData := entities.BookingEmailData{
		GuestEmail:        order.Email,
		ItemTitle:         item.Title,
		OrderID:           order.ID,
		CheckInFormatted:  booking.Start.Format("02 Jan 2006"),
		CheckOutFormatted: booking.End.Format("02 Jan 2006"),
		CurrentYear:       time.Now().UTC().Year(),
	}

	subject := fmt.Sprintf("Your booking is confirmed - Order #%d", emailData.OrderID)
	body := fmt.Sprintf(
		"Hello,\n\nYour booking is confirmed.\n\n"+
			"Booking details:\n"+
			"Order: #%d\n"+
			"Stay: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n\n"+
			"Thank you for booking with us.\n\n"+
			"%d. All rights reserved.",
		emailData.OrderID, emailData.ItemTitle,
		emailData.CheckInFormatted, emailData.CheckOutFormatted,
		emailData.CurrentYear,
	)

	go func(toEmail, subject, body string) {
		if err := SendEmailWithSendGrid(toEmail, subject, body); err != nil {
			log.Printf("Confirmation email for order %d failed: %v", emailData.OrderID, err)
		}
	}(order.Email, subject, body)

	if order.Phone != "" {
		sms := fmt.Sprintf("Your booking for %s is confirmed!\nCheck-in: %s.\nMore details in your email.",
			emailData.ItemTitle, emailData.CheckInFormatted)
		if err := SendSMS(order.Phone, sms); err != nil {
			log.Printf("Order %d committed, but the confirmation SMS to %s failed: %v", order.ID, order.Phone, err)
		}
	}
}
