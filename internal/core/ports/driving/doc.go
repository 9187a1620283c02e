// Package driving provides interfaces for use-case entry points
// (primary/inbound ports). The CLI adapter depends on these
// interfaces; implementations live in internal/core/services.
package driving
