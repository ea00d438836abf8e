package entity

import "time"

// User representa al principal autenticable. Username es único e inmutable.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano; nunca sale hacia el cliente
	CreatedAt    time.Time
}
