// Package header describes SigmaStudio packet headers as ordered, validated
// collections of named byte fields.
//
// Ownership boundary:
// - field layout and validation (overlap, continuity)
// - header serialization and parsing
// - operation keys and dispatch from the leading operation byte
package header
