// Package auth owns the credential lifecycle: caching a bearer token on
// disk, decoding its claims, checking expiry, and dispatching to the
// interactive acquisition flow when no usable credential exists.
//
// The token is externally issued and is never cryptographically verified
// here. Claims are decoded from the payload segment only, and the
// UnverifiedClaims type keeps that asymmetry visible to callers.
package auth
