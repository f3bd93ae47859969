package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MinSecretLen is the minimum accepted signing secret length in bytes.
const MinSecretLen = 32

// Service signs and verifies compact HS256 tokens with a fixed secret.
// The secret is set once at construction and read-only afterwards, so a
// single Service is safe for concurrent use.
type Service struct {
	secret []byte
}

// New creates a token service with the given signing secret.
func New(secret []byte) (*Service, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrShortSecret
	}
	return &Service{secret: secret}, nil
}

// NewFromString creates a token service from a string secret.
func NewFromString(secret string) (*Service, error) {
	return New([]byte(secret))
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Generate signs claims into a compact token string.
func (s *Service) Generate(claims any) (string, error) {
	headerJSON, err := json.Marshal(header{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", errors.Join(ErrSigningFailed, err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", errors.Join(ErrSigningFailed, fmt.Errorf("marshal claims: %w", err))
	}

	enc := base64.RawURLEncoding
	signingInput := enc.EncodeToString(headerJSON) + "." + enc.EncodeToString(claimsJSON)
	return signingInput + "." + enc.EncodeToString(s.sign(signingInput)), nil
}

// Parse verifies a token's signature and validity window, then unmarshals
// its claims into the given value. Claims implementing ClaimsValidator are
// validated after unmarshaling.
func (s *Service) Parse(token string, claims any) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ErrInvalidToken
	}

	enc := base64.RawURLEncoding

	headerJSON, err := enc.DecodeString(parts[0])
	if err != nil {
		return ErrInvalidToken
	}
	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return ErrInvalidToken
	}
	if h.Alg != "HS256" {
		return ErrUnsupportedAlgorithm
	}

	sig, err := enc.DecodeString(parts[2])
	if err != nil {
		return ErrInvalidToken
	}
	if !hmac.Equal(sig, s.sign(parts[0]+"."+parts[1])) {
		return ErrInvalidSignature
	}

	claimsJSON, err := enc.DecodeString(parts[1])
	if err != nil {
		return ErrInvalidToken
	}
	if err := json.Unmarshal(claimsJSON, claims); err != nil {
		return ErrInvalidToken
	}

	if v, ok := claims.(ClaimsValidator); ok {
		return v.Valid()
	}
	return nil
}

func (s *Service) sign(input string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(input))
	return mac.Sum(nil)
}

// ClaimsValidator is implemented by claims types that carry their own
// validity checks, run after signature verification.
type ClaimsValidator interface {
	Valid() error
}

// StandardClaims holds the registered claims used by the framework.
// Zero-valued timestamps are not enforced.
type StandardClaims struct {
	Issuer    string `json:"iss,omitempty"`
	Subject   string `json:"sub,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Valid checks the claims' time window against the current clock.
func (c StandardClaims) Valid() error {
	now := time.Now().Unix()
	if c.ExpiresAt != 0 && now >= c.ExpiresAt {
		return ErrExpiredToken
	}
	if c.NotBefore != 0 && now < c.NotBefore {
		return ErrTokenNotYetValid
	}
	return nil
}
