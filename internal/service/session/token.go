package session

import (
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

// Supabase signs access tokens with HS256 by default and ES256/RS256 on
// projects migrated to asymmetric keys.
var acceptedAlgorithms = []jose.SignatureAlgorithm{jose.HS256, jose.RS256, jose.ES256}

// tokenExpired reads the exp claim of the access token without verifying the
// signature; this process never holds the signing secret, and the claim is
// only used to decide when to send the user back to the login screen. Tokens
// that do not parse as JWTs are treated as unexpired so an opaque token does
// not lock the user out.
func tokenExpired(accessToken string, now time.Time) bool {
	parsed, err := jwt.ParseSigned(accessToken, acceptedAlgorithms)
	if err != nil {
		return false
	}
	var claims jwt.Claims
	if err := parsed.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return false
	}
	return claims.Expiry != nil && now.After(claims.Expiry.Time())
}
