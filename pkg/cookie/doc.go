// Package cookie provides HTTP cookie management with optional HMAC
// signing.
//
// The Manager handles plain and signed cookies with shared attribute
// defaults. Signing is optional; signed operations return [ErrNoSecret]
// without a configured secret.
//
// Plain cookies work without a secret:
//
//	m := cookie.New()
//	m.Set(w, "theme", "dark", 86400)
//	value, err := m.Get(r, "theme")
//
// Signed cookies detect tampering with HMAC-SHA256 and require a 32+ byte
// secret:
//
//	m := cookie.New(
//		cookie.WithSecret("your-32+-byte-secret-key-here!!!"),
//		cookie.WithSecure(true),
//	)
//	err := m.SetSigned(w, "oauth_state", state, 300)
//	value, err := m.GetSigned(r, "oauth_state")
//
// The delegated-login middleware uses signed cookies for its handshake
// state round trip.
package cookie
