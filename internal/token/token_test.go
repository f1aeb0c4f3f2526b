package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetor-admin/praetor-admin/internal/shared"
)

const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	svc, err := NewService(testSecret, ttl)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRejectsWeakConfig(t *testing.T) {
	_, err := NewService("short", time.Hour)
	require.Error(t, err)

	_, err = NewService(testSecret, 0)
	require.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)
	now := time.Now()

	raw, err := svc.Issue("42", "alice", "VIEWER", []string{"ROLE_VIEWER", "X_READ"}, now)
	require.NoError(t, err)

	claims, err := svc.Verify(raw, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "VIEWER", claims.PrimaryRole)
	assert.Equal(t, []string{"ROLE_VIEWER", "X_READ"}, claims.Authorities)
	assert.Equal(t, now.Unix(), claims.IssuedAt)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueEmptyAuthoritySet(t *testing.T) {
	svc := newTestService(t, time.Hour)
	now := time.Now()

	raw, err := svc.Issue("7", "norole", "", nil, now)
	require.NoError(t, err)

	claims, err := svc.Verify(raw, now)
	require.NoError(t, err)
	assert.Empty(t, claims.Authorities)
	assert.NotNil(t, claims.Authorities)
}

func TestVerifyExpired(t *testing.T) {
	svc := newTestService(t, time.Minute)
	now := time.Now()

	raw, err := svc.Issue("42", "alice", "VIEWER", []string{"X_READ"}, now)
	require.NoError(t, err)

	_, err = svc.Verify(raw, now.Add(time.Minute))
	assert.True(t, errors.Is(err, shared.ErrTokenExpired))

	_, err = svc.Verify(raw, now.Add(2*time.Hour))
	assert.True(t, errors.Is(err, shared.ErrTokenExpired))
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newTestService(t, time.Hour)
	other, err := NewService("ffffffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)

	now := time.Now()
	raw, err := svc.Issue("42", "alice", "VIEWER", []string{"X_READ"}, now)
	require.NoError(t, err)

	_, err = other.Verify(raw, now)
	assert.True(t, errors.Is(err, shared.ErrInvalidSignature))
}

func TestVerifyTamperedPayload(t *testing.T) {
	svc := newTestService(t, time.Hour)
	now := time.Now()

	raw, err := svc.Issue("42", "alice", "VIEWER", []string{"ROLE_VIEWER", "X_READ"}, now)
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	// Flip one byte at every position of the claim payload; each mutation
	// must be caught by the signature check (or rejected as unparseable).
	for i := range payload {
		mutated := make([]byte, len(payload))
		copy(mutated, payload)
		mutated[i] ^= 0x01
		forged := parts[0] + "." + base64.RawURLEncoding.EncodeToString(mutated) + "." + parts[2]

		_, err := svc.Verify(forged, now)
		require.Error(t, err, "mutation at byte %d accepted", i)
		require.True(t,
			errors.Is(err, shared.ErrInvalidSignature) || errors.Is(err, shared.ErrTokenMalformed),
			"mutation at byte %d: unexpected error %v", i, err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := newTestService(t, time.Hour)
	now := time.Now()

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "!!!.???.###"} {
		_, err := svc.Verify(raw, now)
		assert.True(t, errors.Is(err, shared.ErrTokenMalformed), "input %q: got %v", raw, err)
	}
}

func TestConcurrentIssuesAreIndependent(t *testing.T) {
	svc := newTestService(t, time.Hour)
	now := time.Now()

	first, err := svc.Issue("42", "alice", "VIEWER", []string{"X_READ"}, now)
	require.NoError(t, err)
	second, err := svc.Issue("42", "alice", "VIEWER", []string{"X_READ"}, now)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, raw := range []string{first, second} {
		_, err := svc.Verify(raw, now)
		require.NoError(t, err)
	}
}
