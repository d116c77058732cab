package models

// Account is one stored user account.
type Account struct {
	PasswordHash string `json:"passwordHash"`
	CreatedAt    int64  `json:"createdAt"`
}

// Accounts is the accounts document, keyed by lowercased email.
type Accounts struct {
	Users map[string]Account `json:"users"`
}

// NewAccounts returns an empty accounts document.
func NewAccounts() *Accounts {
	return &Accounts{Users: map[string]Account{}}
}
