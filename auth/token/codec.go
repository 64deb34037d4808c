package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-uuid"
)

var (
	ErrTokenInvalid = errors.New("token signature is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 10 * time.Minute

// Claims is the only supported claims shape for this service.
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Codec issues and verifies signed, expiring bearer tokens. It is stateless
// and never consults the revocation store; revocation is a separate check
// performed by the guard after verification.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a codec signing with the given secret. A zero ttl falls
// back to DefaultTTL.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("signing secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token embedding the principal's identity and role, expiring
// at issuance time plus the configured TTL.
func (c *Codec) Issue(p Principal) (string, error) {
	return c.IssueAt(p, time.Now())
}

// IssueAt is Issue with an explicit issuance time. Exposed for expiry
// boundary tests.
func (c *Codec) IssueAt(p Principal, issuedAt time.Time) (string, error) {
	jti, err := uuid.GenerateUUID()
	if err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		},
		UserID: p.UserID,
		Role:   p.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns the
// embedded principal. It returns ErrTokenExpired for an expired token and
// ErrTokenInvalid for any other verification failure.
func (c *Codec) Verify(tokenString string) (Principal, error) {
	claims, err := c.verifyClaims(tokenString)
	if err != nil {
		return Principal{}, err
	}
	return Principal{
		UserID: claims.UserID,
		Role:   claims.Role,
	}, nil
}

func (c *Codec) verifyClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
