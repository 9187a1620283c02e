// Package normalisers provides implementations of the Normaliser
// interface. Normalisation turns raw file bytes into the canonical
// text every downstream stage (chunking, embedding, evaluation)
// operates on.
package normalisers
