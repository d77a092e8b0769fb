package order

// Repository owns one cart per session id. Implementations must run fn
// with exclusive access to the cart.
type Repository interface {
	// Ensure returns sessionID if it is known, otherwise creates an empty
	// cart under a freshly minted id and returns that.
	Ensure(sessionID string) string

	// Update applies fn to the session's cart. With create set an unknown
	// session is created first, otherwise it fails with ErrSessionUnknown.
	// Changes made by fn are discarded when it returns an error.
	Update(sessionID string, create bool, fn func(*Cart) error) (string, error)

	// Get returns a copy of the cart.
	Get(sessionID string) (Cart, bool)

	// Delete removes the session. It reports whether it existed.
	Delete(sessionID string) bool
}
