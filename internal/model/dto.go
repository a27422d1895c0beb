package model

import "time"

// FilmDto is a film prepared for display.  Genre holds the resolved
// genre name and PosterPath the URL path of the poster (/files/{id}).
type FilmDto struct {
	ID                uint64
	Name              string
	Description       string
	Year              uint32
	MinimalAge        uint32
	DurationInMinutes uint32
	Genre             string
	PosterPath        string
}

// FilmSessionDto is a row of the session listing.
type FilmSessionDto struct {
	ID              uint64
	FilmID          uint64
	FilmName        string
	FilmDescription string
	PosterPath      string
	HallName        string
	StartTime       time.Time
	EndTime         time.Time
	Price           uint32
}

// FilmSessionDetailDto carries everything the purchase page shows about
// a session: the session itself, the full film and the full hall.
type FilmSessionDetailDto struct {
	ID                    uint64
	StartTime             time.Time
	EndTime               time.Time
	Price                 uint32
	FilmName              string
	FilmDescription       string
	FilmYear              uint32
	FilmMinimalAge        uint32
	FilmDurationInMinutes uint32
	GenreName             string
	PosterPath            string
	HallName              string
	HallDescription       string
	HallRowCount          uint32
	HallPlaceCount        uint32
}
