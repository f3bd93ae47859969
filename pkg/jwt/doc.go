// Package jwt implements compact HS256 bearer tokens: a Service bound to
// a signing secret generates self-contained token strings and verifies
// them back into typed claims. Custom claims types embed StandardClaims
// to inherit expiry and not-before enforcement.
package jwt
