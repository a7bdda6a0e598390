package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPrefix is the fixed prefix of the compact token format (the
// base64url encoding of a JSON object header).
const TokenPrefix = "eyJ"

// UnverifiedClaims is the decoded payload segment of a compact token.
//
// The name is deliberate: these claims are decoded, not validated. No
// signature check is performed anywhere in this program. The token is
// trusted because the upstream identity provider issued it, and callers
// must not mistake decoding for verification.
type UnverifiedClaims map[string]interface{}

// DecodeUnverified decodes the claims segment of a compact token without
// verifying its signature. It returns a DecodeError when the token does
// not have exactly three dot-separated segments or when the middle
// segment is not valid base64url-encoded JSON.
func DecodeUnverified(token string) (UnverifiedClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, &DecodeError{
			Message: fmt.Sprintf("failed to decode token claims: %v", err),
			Err:     err,
		}
	}
	return UnverifiedClaims(claims), nil
}

// ExpiresAt returns the exp claim as a UTC instant. The second return is
// false when the claim is absent or not numeric.
func (c UnverifiedClaims) ExpiresAt() (time.Time, bool) {
	exp, ok := c.floatClaim("exp")
	if !ok || exp == 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0).UTC(), true
}

// StringClaim returns the named claim as a string, or "" if absent or not
// a string.
func (c UnverifiedClaims) StringClaim(name string) string {
	if v, ok := c[name].(string); ok {
		return v
	}
	return ""
}

// IntClaim returns the named claim as an int64, or 0 if absent or not
// numeric. JSON numbers decode as float64, which covers the identifier
// ranges in use here.
func (c UnverifiedClaims) IntClaim(name string) int64 {
	v, ok := c.floatClaim(name)
	if !ok {
		return 0
	}
	return int64(v)
}

// StringListClaim returns the named claim as a list of strings. A single
// string claim is returned as a one-element list.
func (c UnverifiedClaims) StringListClaim(name string) []string {
	switch v := c[name].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (c UnverifiedClaims) floatClaim(name string) (float64, bool) {
	switch v := c[name].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
