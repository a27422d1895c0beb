package model

// Film is a catalog entry.  GenreID and FileID reference the genres and
// files tables; the referenced rows may have been removed, in which case
// display code substitutes placeholder values.
//
// Fields:
//  ID                – primary key identifier.
//  Name              – film title.
//  Description       – synopsis.
//  Year              – release year.
//  MinimalAge        – minimum viewer age.
//  DurationInMinutes – running time.
//  GenreID           – genres.id of the film's genre.
//  FileID            – files.id of the poster image.
type Film struct {
	ID                uint64 // films.id
	Name              string // films.name
	Description       string // films.description
	Year              uint32 // films.year
	MinimalAge        uint32 // films.minimal_age
	DurationInMinutes uint32 // films.duration_in_minutes
	GenreID           uint64 // films.genre_id
	FileID            uint64 // films.file_id
}

// Genre is a film genre.
type Genre struct {
	ID   uint64 // genres.id
	Name string // genres.name
}

// File describes a stored poster image.  Path points at the bytes on
// disk and is never exposed to clients; they address files by ID.
type File struct {
	ID   uint64 // files.id
	Name string // files.name
	Path string // files.path
}
