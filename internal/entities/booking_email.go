package entities

type BookingEmailData struct {
	GuestEmail        string
	ItemTitle         string
	OrderID           int64
	CheckInFormatted  string
	CheckOutFormatted string
	CurrentYear       int
}
