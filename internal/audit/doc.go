// Package audit defines the audit event model and asynchronous dispatch used
// by the engine. Every internally distinct failure condition (which the public
// API deliberately collapses into one unauthorized signal) is recorded here
// for diagnosis.
package audit
