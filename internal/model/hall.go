package model

// Hall represents a screening hall.  Seats are addressed by a row
// number in [1, RowCount] and a place number in [1, PlaceCount].
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the hall.
//  RowCount    – number of seating rows.
//  PlaceCount  – number of places in each row.
//  Description – free text shown on the purchase page.
type Hall struct {
	ID          uint64 // halls.id
	Name        string // halls.name
	RowCount    uint32 // halls.row_count
	PlaceCount  uint32 // halls.place_count
	Description string // halls.description
}
