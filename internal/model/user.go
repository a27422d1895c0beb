package model

// User represents an application user record as stored in the
// `users` table.  The json tags are omitted because these structs are
// used internally; handlers render their own views.
//
// Fields:
//  ID           – primary key identifier of the user.
//  FullName     – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
type User struct {
	ID           uint64 // users.id
	FullName     string // users.full_name
	Email        string // users.email
	PasswordHash string // users.password
}
