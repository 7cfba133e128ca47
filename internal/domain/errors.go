package domain

import "errors"

var (
	// ErrLoginURL signals the backend refused or failed to produce an authorization URL.
	ErrLoginURL = errors.New("auth: login url unavailable")
	// ErrCallback signals the authorization-code exchange failed.
	ErrCallback = errors.New("auth: callback failed")
	// ErrSessionExpired signals the cached session's access token is past its expiry.
	ErrSessionExpired = errors.New("auth: session expired")
	// ErrRoleLookup signals the authorized_users lookup could not reach the backend.
	ErrRoleLookup = errors.New("roles: lookup failed")
)
