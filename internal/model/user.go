package model

import "time"

// User represents an application user record as stored in the `users`
// table.  These structs are used by the repository layer only; handlers
// define separate response types with the JSON shape they want to expose
// (the password hash in particular never leaves the process).
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
