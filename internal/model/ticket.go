package model

// Ticket is a sold seat.  For a given session the pair
// (RowNumber, PlaceNumber) is unique; the tickets table enforces this
// with a unique key.  Tickets are never updated once written.
//
// Fields:
//  ID          – primary key identifier.
//  SessionID   – film session the seat belongs to.
//  RowNumber   – 1-based row in the hall.
//  PlaceNumber – 1-based place in the row.
//  UserID      – buyer.
type Ticket struct {
	ID          uint64 // tickets.id
	SessionID   uint64 // tickets.session_id
	RowNumber   uint32 // tickets.row_number
	PlaceNumber uint32 // tickets.place_number
	UserID      uint64 // tickets.user_id
}

// Place is a seat coordinate within a hall.
type Place struct {
	Row   uint32
	Place uint32
}
