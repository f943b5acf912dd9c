package entity

import "time"

// User é um usuário do console (autenticação por senha + JWT).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Role         string // administrator, operator
	CreatedAt    time.Time
}
