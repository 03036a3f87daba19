package token

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrMalformed is returned when a token string does not decode at all.
var ErrMalformed = errors.New("token malformed")

// ErrBadSignature is returned when a token's signature does not verify under
// the expected secret.
var ErrBadSignature = errors.New("token signature invalid")

// ErrExpired is returned when a structurally valid token is past its expiry.
var ErrExpired = errors.New("token expired")

// Claims is the signed payload embedded in both token classes. Instances are
// immutable once issued; every sign-in and refresh mints a fresh set.
type Claims struct {
	PrincipalID int64  `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Hint is the unauthenticated {id, email} extracted by
// [Codec.DecodeUnverified]. It must never be used to authorize anything.
type Hint struct {
	PrincipalID int64
	Email       string
}

// Config holds the per-class secrets and TTLs plus shared claim options.
// Now is the clock used for issued-at and expiry math; nil means time.Now.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Leeway        time.Duration
	Now           func() time.Time
}

// Codec signs and verifies claims tokens. It is stateless and safe for
// concurrent use.
type Codec struct {
	config Config
	now    func() time.Time
}

// NewCodec validates cfg and returns a ready [Codec].
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("both class secrets required")
	}
	if len(cfg.AccessSecret) == len(cfg.RefreshSecret) &&
		subtle.ConstantTimeCompare(cfg.AccessSecret, cfg.RefreshSecret) == 1 {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 {
		return nil, errors.New("invalid leeway configuration")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Codec{config: cfg, now: now}, nil
}

// SignAccess mints an access-class token for the given claims basis.
func (c *Codec) SignAccess(id int64, email, role string) (string, error) {
	return c.sign(id, email, role, c.config.AccessSecret, c.config.AccessTTL)
}

// SignRefresh mints a refresh-class token for the given claims basis.
func (c *Codec) SignRefresh(id int64, email, role string) (string, error) {
	return c.sign(id, email, role, c.config.RefreshSecret, c.config.RefreshTTL)
}

// VerifyAccess validates signature and expiry against the access secret.
func (c *Codec) VerifyAccess(tokenStr string) (*Claims, error) {
	return c.verify(tokenStr, c.config.AccessSecret)
}

// VerifyRefresh validates signature and expiry against the refresh secret.
func (c *Codec) VerifyRefresh(tokenStr string) (*Claims, error) {
	return c.verify(tokenStr, c.config.RefreshSecret)
}

// DecodeUnverified reads {id, email} out of a token WITHOUT checking its
// signature or expiry. The rotation flow uses it to locate the session slot;
// the stored-token equality check supplies the actual authenticity proof.
func (c *Codec) DecodeUnverified(tokenStr string) (Hint, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return Hint{}, ErrMalformed
	}
	if claims.Email == "" {
		return Hint{}, ErrMalformed
	}

	return Hint{PrincipalID: claims.PrincipalID, Email: claims.Email}, nil
}

func (c *Codec) sign(id int64, email, role string, secret []byte, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		PrincipalID: id,
		Email:       email,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			// A per-token jti keeps two tokens minted within the same second
			// from being byte-identical; the rotation equality check depends
			// on every issued refresh token being unique.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    c.config.Issuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (c *Codec) verify(tokenStr string, secret []byte) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	}
	if c.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(c.config.Leeway))
	}
	if c.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(c.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}

	return claims, nil
}
