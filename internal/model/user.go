package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column. The struct is
// used internally by the repository layer; handlers define separate
// response types with JSON tags so the password hash can never leak
// into a response body.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
