package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nananom-farms/backend/internal/authz"
)

func newTestCodec(now time.Time) *Codec {
	c := NewCodec("test-secret", "http://localhost:8080", time.Hour, 24*time.Hour)
	c.now = func() time.Time { return now }
	return c
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(now)

	raw, exp, err := codec.Issue("user-1", "role-1", authz.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	p, err := codec.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, "role-1", p.RoleID)
	assert.Equal(t, authz.RoleCustomer, p.RoleName)
}

func TestTTLSelection(t *testing.T) {
	codec := newTestCodec(time.Now())

	tests := []struct {
		role string
		want time.Duration
	}{
		{authz.RoleAdministrator, 24 * time.Hour},
		{authz.RoleSupportAgent, 24 * time.Hour},
		{authz.RoleCustomer, time.Hour},
		{"Unknown Role", time.Hour},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, codec.TTL(tc.role), tc.role)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(issued)

	raw, _, err := codec.Issue("user-1", "role-1", authz.RoleCustomer)
	require.NoError(t, err)

	// One second before expiry the token is still valid.
	codec.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	_, err = codec.Verify(raw)
	assert.NoError(t, err)

	// One second past expiry it is rejected.
	codec.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	_, err = codec.Verify(raw)
	assert.True(t, errors.Is(err, ErrExpired))
}

func TestVerifyTamperedSignature(t *testing.T) {
	codec := newTestCodec(time.Now())

	raw, _, err := codec.Issue("user-1", "role-1", authz.RoleCustomer)
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Verify(tampered)
	assert.True(t, errors.Is(err, ErrSignatureInvalid))
}

func TestVerifyWrongSecret(t *testing.T) {
	now := time.Now()
	issuing := newTestCodec(now)
	verifying := newTestCodec(now)
	verifying.secret = []byte("other-secret")

	raw, _, err := issuing.Issue("user-1", "role-1", authz.RoleCustomer)
	require.NoError(t, err)

	_, err = verifying.Verify(raw)
	assert.True(t, errors.Is(err, ErrSignatureInvalid))
}

func TestVerifyIssuerMismatch(t *testing.T) {
	now := time.Now()
	issuing := newTestCodec(now)
	issuing.issuer = "http://evil.example"

	raw, _, err := issuing.Issue("user-1", "role-1", authz.RoleCustomer)
	require.NoError(t, err)

	verifying := newTestCodec(now)
	_, err = verifying.Verify(raw)
	assert.True(t, errors.Is(err, ErrClaimMismatch))
}

func TestVerifyGarbage(t *testing.T) {
	codec := newTestCodec(time.Now())
	_, err := codec.Verify("not-a-token")
	assert.True(t, errors.Is(err, ErrMalformed))
}
