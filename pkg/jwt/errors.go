package jwt

import "errors"

var (
	// ErrShortSecret is returned when the signing secret is shorter than
	// MinSecretLen bytes.
	ErrShortSecret = errors.New("jwt: secret must be at least 32 bytes")

	// ErrSigningFailed is returned when token generation fails.
	ErrSigningFailed = errors.New("jwt: signing failed")

	// ErrInvalidToken is returned for structurally malformed tokens.
	ErrInvalidToken = errors.New("jwt: invalid token")

	// ErrUnsupportedAlgorithm is returned when a token's header declares
	// an algorithm other than HS256.
	ErrUnsupportedAlgorithm = errors.New("jwt: unsupported signing algorithm")

	// ErrInvalidSignature is returned when a token's signature does not
	// verify against the service secret.
	ErrInvalidSignature = errors.New("jwt: invalid signature")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("jwt: token expired")

	// ErrTokenNotYetValid is returned when a token's not-before is in the
	// future.
	ErrTokenNotYetValid = errors.New("jwt: token not yet valid")
)
