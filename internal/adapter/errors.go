package adapter

import "errors"

var (
	// ErrUnauthorized indicates the remote rejected the credential.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrNoCredential indicates the auth bridge could not produce a
	// remote credential (any non-200 from the token endpoint).
	ErrNoCredential = errors.New("no remote credential available")
)
