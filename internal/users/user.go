package users

import (
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	ID           int    `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}

type CreateParams struct {
	Email        string
	Name         string
	PasswordHash string
}
