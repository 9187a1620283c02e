// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// All services run synchronously to completion; the corpus and the
// vector index are owned exclusively by the invoking command for the
// duration of one call.
package services
