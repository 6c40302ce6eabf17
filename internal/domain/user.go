package domain

import (
	"fmt"
	"strings"
)

type User struct {
	Name  string `json:"NAME"`
	Email string `json:"EMAIL_ADDRESS"`
	Phone string `json:"PHONE"`
}

func NewUser(name, email, phone string) (*User, error) {
	u := &User{
		Name:  strings.TrimSpace(name),
		Email: NormalizeEmail(email),
		Phone: strings.TrimSpace(phone),
	}
	if u.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if u.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return u, nil
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
