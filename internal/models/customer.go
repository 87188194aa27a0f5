package models

import (
	"strings"
	"time"
)

type Customer struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	MiddleName     string    `json:"middle_name,omitempty"`
	BirthDate      time.Time `json:"birth_date"`
	PassportNumber string    `json:"passport_number"`
	PhoneNumber    string    `json:"phone_number"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName склеивает имя и фамилию, пропуская пустые части.
func (c Customer) FullName() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{c.FirstName, c.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// NormalizeName приводит отображаемое имя к виду для сравнения:
// обрезка, схлопывание пробелов, нижний регистр.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
