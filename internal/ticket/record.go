package ticket

// Digital formats a ticket can be delivered in. Only QRCode triggers a QR
// fetch when rendering.
const (
	FormatQRCode  = "qr_code"
	FormatNFC     = "nfc"
	FormatRFID    = "rfid"
	FormatBarcode = "barcode"
	FormatNone    = "none"
)

// Record is one issued ticket as returned by the ticket service. Several
// logical attributes arrive under different keys depending on which backend
// produced the ticket; see fields.go for the resolution order.
type Record struct {
	ID           Text `json:"id"`
	TicketNumber Text `json:"ticket_number"`

	EventTitle     Text `json:"event_title"`
	EventStartDate Text `json:"event_start_date"`
	EventStartTime Text `json:"event_start_time"`
	StartTime      Text `json:"start_time"`
	EventTime      Text `json:"event_time"`

	VenueName     Text `json:"venue_name"`
	EventVenue    Text `json:"event_venue"`
	EventLocation Text `json:"event_location"`
	Location      Text `json:"location"`

	Status     Text `json:"status"`
	TicketType Text `json:"ticket_type"`

	SeatRow    Text `json:"seat_row"`
	SeatNumber Text `json:"seat_number"`

	AttendeeName Text `json:"attendee_name"`
	HolderName   Text `json:"holder_name"`
	CustomerName Text `json:"customer_name"`
	BuyerName    Text `json:"buyer_name"`
	UserName     Text `json:"user_name"`
	Name         Text `json:"name"`

	OrderNumber      Text `json:"order_number"`
	OrderReference   Text `json:"order_reference"`
	OrderRef         Text `json:"order_ref"`
	BookingReference Text `json:"booking_reference"`
	OrderID          Text `json:"order_id"`
	BookingID        Text `json:"booking_id"`

	Price       Amount `json:"price"`
	Amount      Amount `json:"amount"`
	TotalAmount Amount `json:"total_amount"`
	TotalPrice  Amount `json:"total_price"`
	TicketPrice Amount `json:"ticket_price"`
	Currency    Text   `json:"currency"`

	DigitalFormat Text `json:"digital_format"`
}

// WantsQR reports whether the ticket is delivered as a QR code.
func (r *Record) WantsQR() bool {
	return r.DigitalFormat.String() == FormatQRCode
}

// Identifier is the ticket number when present, else the record id. It is
// what gets printed on the ticket and used in artifact file names.
func (r *Record) Identifier() string {
	if n := r.TicketNumber.String(); n != "" {
		return n
	}
	return r.ID.String()
}
