package rotorauth

import "log"

// warnf is the single logging hook handed to flows. Messages are operational
// warnings only; nothing on a success path logs.
func warnf(format string, args ...any) {
	log.Printf(format, args...)
}
