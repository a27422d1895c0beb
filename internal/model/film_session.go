package model

import "time"

// FilmSession is a scheduled screening of a film in a hall.  It is
// distinct from an HTTP login session.
//
// Fields:
//  ID        – primary key identifier.
//  FilmID    – film being screened.
//  HallID    – hall where the screening takes place.
//  StartTime – when the screening begins.
//  EndTime   – when the screening ends.
//  Price     – ticket price.
type FilmSession struct {
	ID        uint64    // film_sessions.id
	FilmID    uint64    // film_sessions.film_id
	HallID    uint64    // film_sessions.hall_id
	StartTime time.Time // film_sessions.start_time
	EndTime   time.Time // film_sessions.end_time
	Price     uint32    // film_sessions.price
}
