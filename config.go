package rotorauth

import (
	"crypto/subtle"
	"errors"
	"time"
)

// Config carries every tuning knob of the engine. Configure once before
// [Builder.Build]; the engine clones it and treats it as immutable.
type Config struct {
	Token    TokenConfig
	Session  SessionConfig
	Password PasswordConfig
	Account  AccountConfig
	Security SecurityConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig controls signing and verification of both token classes.
// AccessSecret and RefreshSecret must differ: compromise of one class must not
// forge the other.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls the Redis session-slot layout.
type SessionConfig struct {
	RedisPrefix string
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig holds argon2id parameters.
type PasswordConfig struct {
	Memory         uint32 // in KB
	Time           uint32
	Parallelism    uint8
	SaltLength     uint32
	KeyLength      uint32
	RehashOnSignIn bool
}

// AccountConfig controls sign-up behavior.
type AccountConfig struct {
	SignUpEnabled bool
	DefaultRole   Role
}

// SecurityConfig controls the optional sign-in throttle.
type SecurityConfig struct {
	EnableSignInThrottle bool
	EnableIPThrottle     bool
	MaxSignInAttempts    int
	SignInCooldown       time.Duration
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process metrics system.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

const minSecretBytes = 32

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			Leeway:     30 * time.Second,
		},
		Session: SessionConfig{
			RedisPrefix: "rs",
		},
		Password: PasswordConfig{
			Memory:         64 * 1024,
			Time:           2,
			Parallelism:    2,
			SaltLength:     16,
			KeyLength:      32,
			RehashOnSignIn: false,
		},
		Account: AccountConfig{
			SignUpEnabled: true,
			DefaultRole:   RoleUser,
		},
		Security: SecurityConfig{
			EnableSignInThrottle: false,
			EnableIPThrottle:     false,
			MaxSignInAttempts:    10,
			SignInCooldown:       5 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig returns the baseline configuration. Secrets are intentionally
// empty and must be supplied before Build.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.AccessSecret = cloneBytes(cfg.Token.AccessSecret)
	out.Token.RefreshSecret = cloneBytes(cfg.Token.RefreshSecret)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Validate checks internal consistency. Builder calls it; exported so callers
// can fail fast when loading configuration from the environment.
func (c *Config) Validate() error {
	if len(c.Token.AccessSecret) < minSecretBytes {
		return errors.New("access secret must be at least 32 bytes")
	}
	if len(c.Token.RefreshSecret) < minSecretBytes {
		return errors.New("refresh secret must be at least 32 bytes")
	}
	if len(c.Token.AccessSecret) == len(c.Token.RefreshSecret) &&
		subtle.ConstantTimeCompare(c.Token.AccessSecret, c.Token.RefreshSecret) == 1 {
		return errors.New("access and refresh secrets must differ")
	}
	if c.Token.AccessTTL <= 0 || c.Token.RefreshTTL <= 0 {
		return errors.New("invalid TTL configuration")
	}
	if c.Token.RefreshTTL <= c.Token.AccessTTL {
		return errors.New("refresh TTL must exceed access TTL")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("invalid leeway configuration")
	}
	if c.Session.RedisPrefix == "" {
		return errors.New("session redis prefix required")
	}
	if !c.Account.DefaultRole.Valid() {
		return errors.New("account default role is not a declared role")
	}
	if c.Security.EnableSignInThrottle {
		if c.Security.MaxSignInAttempts <= 0 {
			return errors.New("sign-in throttle requires positive max attempts")
		}
		if c.Security.SignInCooldown <= 0 {
			return errors.New("sign-in throttle requires positive cooldown")
		}
	}
	return nil
}
