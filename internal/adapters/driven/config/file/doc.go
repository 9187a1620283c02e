// Package file provides the TOML configuration layer. A missing
// config file is not an error: every section has working defaults, so
// the pipeline runs out of the box and the file only needs to name
// the values it overrides.
package file
