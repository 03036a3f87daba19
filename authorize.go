package rotorauth

// Allowed is the authorization gate: one pure function over the verified role
// and a route's declared role set. An empty required set makes the route
// role-agnostic — any resolved principal passes. A role outside the closed
// enumeration always denies, declared set or not.
func Allowed(role Role, required ...Role) bool {
	if !role.Valid() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// Allowed reports whether a verified principal with the given role may pass a
// route declaring the required role set, and counts denials.
func (e *Engine) Allowed(role Role, required ...Role) bool {
	ok := Allowed(role, required...)
	if !ok {
		e.metricInc(MetricForbidden)
	}
	return ok
}
