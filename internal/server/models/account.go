// Package models defines the persistent record types of the task manager.
package models

import "time"

// Account is the user/credential record. Password always holds the bcrypt
// hash once the record has been persisted; plaintext only exists in memory
// while a register/update operation is in flight.
type Account struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Age       int64
	Avatar    []byte
	Tokens    []SessionToken
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionToken is one entry of an account's token sequence. Entries are
// ordered by issuance and carry no expiry; they only disappear through
// explicit revocation or account deletion.
type SessionToken struct {
	ID        int64
	AccountID string
	Token     string
	CreatedAt time.Time
}

// PublicAccount is the response shape of an account. Password, Tokens and
// Avatar are not representable here, so a handler serializing it cannot leak
// them.
type PublicAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int64     `json:"age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public returns the account stripped down to its transmittable fields.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Age:       a.Age,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
