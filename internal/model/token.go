package model

// TokenManager issues and validates session tokens.
type TokenManager interface {
	Generate(identity Identity) (string, error)
	Parse(token string) (Identity, error)
}
