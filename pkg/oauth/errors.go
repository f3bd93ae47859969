package oauth

import "errors"

var (
	// ErrMissingClientID is returned when the provider client ID is not
	// configured.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the provider client secret
	// is not configured.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrEmailNotVerified is returned when the provider reports that the
	// user's email is not verified, or no verified email exists.
	ErrEmailNotVerified = errors.New("oauth: email not verified")

	// ErrNilResponse is returned when the provider returns a nil response.
	ErrNilResponse = errors.New("oauth: nil response from provider")

	// ErrFetchFailed is returned when a provider request fails to complete.
	ErrFetchFailed = errors.New("oauth: failed to fetch from provider")

	// ErrRequestFailed is returned when the provider returns a non-OK
	// status.
	ErrRequestFailed = errors.New("oauth: request returned non-OK status")

	// ErrDecodeFailed is returned when decoding a provider response fails.
	ErrDecodeFailed = errors.New("oauth: failed to decode response")
)
