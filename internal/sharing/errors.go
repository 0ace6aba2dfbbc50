package sharing

import "errors"

var (
	// ErrInvalidCode means the redeemed code does not resolve to any owner.
	ErrInvalidCode = errors.New("invalid invite code")
	// ErrSelfRedeem means a user tried to redeem their own code.
	ErrSelfRedeem = errors.New("cannot redeem your own invite code")
	// ErrAlreadyConnected means the viewer already holds a grant from the
	// code's owner.
	ErrAlreadyConnected = errors.New("already connected to this user")
)
