// Package token issues and verifies the signed, self-contained bearer
// credential. A token is a snapshot of the authority set at issuance: verify
// never consults the role registry, so an authority revoked after issuance
// keeps granting access until the token expires. There is no revocation list;
// expiry is the only termination.
package token

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"

	"github.com/praetor-admin/praetor-admin/internal/shared"
)

const signingAlgo = jose.HS512

// Claims is the payload embedded in every issued token. The signature covers
// the whole set, so tampering with any field invalidates the token.
type Claims struct {
	Subject     string   `json:"sub"`
	Username    string   `json:"username"`
	PrimaryRole string   `json:"primary_role"`
	Authorities []string `json:"authorities"`
	IssuedAt    int64    `json:"iat"`
	ExpiresAt   int64    `json:"exp"`
	ID          string   `json:"jti"`
}

// Service signs and verifies tokens with a process-wide symmetric secret
// supplied at construction.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds a Service. The secret must be at least 32 bytes; HS512
// derives no safety from short keys.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if len(secret) < 32 {
		return nil, errors.New("token: secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// TTL reports the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue produces a compact signed token for the subject carrying its resolved
// authority snapshot. Concurrent issuances for the same subject are
// independent and each valid on their own.
func (s *Service) Issue(subject, username, primaryRole string, authorities []string, now time.Time) (string, error) {
	if authorities == nil {
		authorities = []string{}
	}
	claims := Claims{
		Subject:     subject,
		Username:    username,
		PrimaryRole: primaryRole,
		Authorities: authorities,
		IssuedAt:    now.Unix(),
		ExpiresAt:   now.Add(s.ttl).Unix(),
		ID:          uuid.NewString(),
	}

	signer, err := jose.NewSigner(jose.SigningKey{
		Algorithm: signingAlgo,
		Key:       s.secret,
	}, (&jose.SignerOptions{}).WithType("JWT"))
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	signed, err := signer.Sign(payload)
	if err != nil {
		return "", err
	}

	return signed.CompactSerialize()
}

// Verify parses and validates a presented token. Structural failures return
// ErrTokenMalformed, signature mismatches ErrInvalidSignature, and a verified
// token past its expiry ErrTokenExpired. On success the decoded claims are
// returned verbatim.
func (s *Service) Verify(raw string, now time.Time) (*Claims, error) {
	object, err := jose.ParseSigned(raw, []jose.SignatureAlgorithm{signingAlgo})
	if err != nil {
		return nil, shared.ErrTokenMalformed
	}
	if len(object.Signatures) != 1 {
		return nil, shared.ErrTokenMalformed
	}

	payload, err := object.Verify(s.secret)
	if err != nil {
		return nil, shared.ErrInvalidSignature
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, shared.ErrTokenMalformed
	}

	if now.Unix() >= claims.ExpiresAt {
		return nil, shared.ErrTokenExpired
	}

	return &claims, nil
}
