package flows

// PrincipalRecord is the flow-local principal model. Role stays a plain
// string here; the root package owns the closed enumeration.
type PrincipalRecord struct {
	ID           int64
	Email        string
	Role         string
	PasswordHash string
}
