package model

import "time"

// User is a box-office staff account.  Staff authenticate against the
// backstage API to author concerts, stock inventory and manage orders.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – login email (unique).
//  PasswordHash – bcrypt hash of the password.
//  Role         – role claim embedded in issued tokens (BOX_OFFICE).
//  CreatedAt    – creation timestamp.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}

// RoleBoxOffice is the only role issued by this service.
const RoleBoxOffice = "BOX_OFFICE"
