package models

// User is a stored credential record. PasswordHash holds the encoded output
// of the configured password hasher and is never plaintext.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}
