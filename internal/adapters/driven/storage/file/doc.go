// Package file provides file-based implementations of the driven
// storage ports: the JSON corpus snapshot, the JSONL chunk log, the
// date-partitioned evaluation run log, the trained model store and
// the ingest artifact sink.
package file
