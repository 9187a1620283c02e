// Package connectors provides implementations of the Connector
// interface for document sources. Each connector knows how to collect
// raw source files from a specific location type.
package connectors
