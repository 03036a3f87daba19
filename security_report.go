package rotorauth

import "time"

// SecurityReport is a read-only snapshot of the engine's security posture,
// returned by [Engine.SecurityReport]. It exposes configuration facts, never
// secrets.
type SecurityReport struct {
	SigningAlgorithm     string
	AccessTTL            time.Duration
	RefreshTTL           time.Duration
	DistinctClassSecrets bool
	SingleSessionModel   bool
	SignUpEnabled        bool
	SignInThrottleActive bool
	AuditActive          bool
	Argon2               PasswordConfigReport
}

// PasswordConfigReport contains the argon2id parameters active in the engine.
type PasswordConfigReport struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// SecurityReport summarizes the active security configuration for operators
// and compliance tooling.
func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	return SecurityReport{
		SigningAlgorithm:     "HS256",
		AccessTTL:            e.config.Token.AccessTTL,
		RefreshTTL:           e.config.Token.RefreshTTL,
		DistinctClassSecrets: true, // Build rejects equal secrets
		SingleSessionModel:   true,
		SignUpEnabled:        e.config.Account.SignUpEnabled,
		SignInThrottleActive: e.limiter != nil,
		AuditActive:          e.audit != nil,
		Argon2: PasswordConfigReport{
			Memory:      e.config.Password.Memory,
			Time:        e.config.Password.Time,
			Parallelism: e.config.Password.Parallelism,
			SaltLength:  e.config.Password.SaltLength,
			KeyLength:   e.config.Password.KeyLength,
		},
	}
}
