// Package a5e holds the typed reference entries (feats, spells, maneuvers
// and conditions) and renders them into display segments.
//
// Entries are built by the conversion service from stored records and are
// immutable once built. Extras structs carry validator tags; an entry is
// only handed out after its record passed validation.
package a5e
