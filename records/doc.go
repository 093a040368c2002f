// Package records models the schematic primitives stored in a component
// and the owner-indexed flattening that serializes them.
//
// Each primitive variant carries a fixed numeric discriminant, its record
// type, written as the mandatory RECORD parameter and used by the decoder
// to select the variant's constructor. Variants embed [Base] for the
// attributes every primitive shares and implement the [Primitive]
// interface for parameter export/import.
//
// A component's primitives form a tree. [Flatten] walks it depth-first,
// parents before children and siblings in child-list order, assigning each
// primitive a sequential flat index and recording its owner's flat index
// in the OWNERINDEX parameter. [Rebuild] reverses this using only the
// owner indices, so traversal order is part of the wire contract.
//
// Pins are enumerated separately: each pin receives a sequential pin index
// in the same traversal, and its optional out-of-line payloads (wide text,
// raw text data, symbol line widths) are collected into a [PinAux] keyed
// by that index for emission as auxiliary streams.
//
// Unknown record types decode into [Unknown], which preserves the raw
// parameter list so the primitive re-emits losslessly; strict callers can
// ask [Rebuild] to fail instead.
package records
