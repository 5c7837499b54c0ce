// Package token issues and verifies the signed bearer tokens that carry
// the authenticated principal between requests.
package token

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/nananom-farms/backend/internal/authz"
)

// Verification failures. The HTTP layer treats them all as "unauthenticated";
// the distinction only surfaces in logs.
var (
	ErrMalformed        = errors.New("token: malformed token")
	ErrExpired          = errors.New("token: token expired")
	ErrSignatureInvalid = errors.New("token: signature invalid")
	ErrClaimMismatch    = errors.New("token: issuer or audience mismatch")
)

// Codec signs and verifies principal-bearing tokens with a shared HMAC
// secret. The base URL doubles as issuer and audience claim.
type Codec struct {
	secret      []byte
	issuer      string
	customerTTL time.Duration
	staffTTL    time.Duration
	now         func() time.Time
}

// NewCodec constructs a Codec. staffTTL applies to Administrator and
// Support Agent tokens, customerTTL to everything else.
func NewCodec(secret, baseURL string, customerTTL, staffTTL time.Duration) *Codec {
	return &Codec{
		secret:      []byte(secret),
		issuer:      baseURL,
		customerTTL: customerTTL,
		staffTTL:    staffTTL,
		now:         time.Now,
	}
}

type principalPayload struct {
	UserID   string `json:"userId"`
	RoleID   string `json:"roleId"`
	RoleName string `json:"roleName"`
}

type claims struct {
	Data principalPayload `json:"data"`
	jwtv5.RegisteredClaims
}

// TTL returns the lifetime applied to tokens for the given role.
func (c *Codec) TTL(roleName string) time.Duration {
	if roleName == authz.RoleAdministrator || roleName == authz.RoleSupportAgent {
		return c.staffTTL
	}
	return c.customerTTL
}

// Issue signs a token for the given principal data and returns the compact
// form together with its expiry.
func (c *Codec) Issue(userID, roleID, roleName string) (string, time.Time, error) {
	now := c.now().UTC()
	exp := now.Add(c.TTL(roleName))

	cl := claims{
		Data: principalPayload{UserID: userID, RoleID: roleID, RoleName: roleName},
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwtv5.ClaimStrings{c.issuer},
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}

	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks signature, expiry and the issuer/audience claims, then
// returns the embedded principal. Expiry is strict: no leeway is applied.
func (c *Codec) Verify(raw string) (authz.Principal, error) {
	var cl claims
	_, err := jwtv5.ParseWithClaims(raw, &cl,
		func(t *jwtv5.Token) (any, error) { return c.secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwtv5.ErrTokenExpired):
			return authz.Principal{}, ErrExpired
		case errors.Is(err, jwtv5.ErrTokenSignatureInvalid):
			return authz.Principal{}, ErrSignatureInvalid
		default:
			return authz.Principal{}, ErrMalformed
		}
	}

	if cl.Issuer != c.issuer || !containsAudience(cl.Audience, c.issuer) {
		return authz.Principal{}, ErrClaimMismatch
	}

	return authz.Principal{
		UserID:   cl.Data.UserID,
		RoleID:   cl.Data.RoleID,
		RoleName: cl.Data.RoleName,
	}, nil
}

func containsAudience(aud jwtv5.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
