package ports

// TokenService issues and verifies signed, time-limited session tokens.
// Tokens are stateless bearer credentials; no revocation list is kept.
type TokenService interface {
	// Issue produces a signed token asserting userID.
	Issue(userID string) (string, error)
	// Verify checks signature and expiry and returns the asserted userID.
	// Any structural, signature or expiry failure yields domain.ErrTokenInvalid.
	Verify(token string) (string, error)
}
