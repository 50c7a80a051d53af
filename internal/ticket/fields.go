package ticket

// Field reads one raw key of a record.
type Field func(*Record) Text

// AmountField reads one raw monetary key of a record.
type AmountField func(*Record) Amount

// Ordered alias lists per logical attribute. Earlier entries win.
var (
	TimeFields = []Field{
		func(r *Record) Text { return r.EventStartTime },
		func(r *Record) Text { return r.StartTime },
		func(r *Record) Text { return r.EventTime },
	}

	VenueFields = []Field{
		func(r *Record) Text { return r.VenueName },
		func(r *Record) Text { return r.EventVenue },
		func(r *Record) Text { return r.EventLocation },
		func(r *Record) Text { return r.Location },
	}

	AttendeeFields = []Field{
		func(r *Record) Text { return r.AttendeeName },
		func(r *Record) Text { return r.HolderName },
		func(r *Record) Text { return r.CustomerName },
		func(r *Record) Text { return r.BuyerName },
		func(r *Record) Text { return r.UserName },
		func(r *Record) Text { return r.Name },
	}

	OrderRefFields = []Field{
		func(r *Record) Text { return r.OrderNumber },
		func(r *Record) Text { return r.OrderReference },
		func(r *Record) Text { return r.OrderRef },
		func(r *Record) Text { return r.BookingReference },
		func(r *Record) Text { return r.OrderID },
		func(r *Record) Text { return r.BookingID },
	}

	AmountFields = []AmountField{
		func(r *Record) Amount { return r.Price },
		func(r *Record) Amount { return r.Amount },
		func(r *Record) Amount { return r.TotalAmount },
		func(r *Record) Amount { return r.TotalPrice },
		func(r *Record) Amount { return r.TicketPrice },
	}
)

// FirstNonEmpty returns the first non-empty trimmed value among fields.
func FirstNonEmpty(r *Record, fields []Field) string {
	if r == nil {
		return ""
	}
	for _, f := range fields {
		if v := f(r).String(); v != "" {
			return v
		}
	}
	return ""
}

// FirstAmount returns the first set amount among fields.
func FirstAmount(r *Record, fields []AmountField) (Amount, bool) {
	if r == nil {
		return Amount{}, false
	}
	for _, f := range fields {
		if a := f(r); a.Valid {
			return a, true
		}
	}
	return Amount{}, false
}

func (r *Record) Time() string     { return FirstNonEmpty(r, TimeFields) }
func (r *Record) Venue() string    { return FirstNonEmpty(r, VenueFields) }
func (r *Record) Attendee() string { return FirstNonEmpty(r, AttendeeFields) }
func (r *Record) Order() string    { return FirstNonEmpty(r, OrderRefFields) }

// Total is the ticket's resolved price, if any.
func (r *Record) Total() (Amount, bool) { return FirstAmount(r, AmountFields) }

// Seat renders "Row X · Seat Y", "Seat Y", or "" when no seat number is set.
func (r *Record) Seat() string {
	num := r.SeatNumber.String()
	if num == "" {
		return ""
	}
	if row := r.SeatRow.String(); row != "" {
		return "Row " + row + " · Seat " + num
	}
	return "Seat " + num
}
