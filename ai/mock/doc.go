// Package mock provides test doubles for the ai capability interfaces.
//
// Each mock exposes function fields so tests can inject custom behavior,
// and falls back to a simple deterministic default when no function is set.
package mock
