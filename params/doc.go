// Package params implements the parameter collection codec: the ordered
// key/value attribute set every record, manifest and header in a library
// file is expressed in.
//
// # Wire form
//
// A collection encodes as pipe-delimited KEY=VALUE pairs with a leading
// delimiter and a trailing NUL:
//
//	|RECORD=2|NAME=CLK|PINLENGTH=30<NUL>
//
// Values percent-escape the three bytes that would break the framing:
// '%' as %25, '|' as %7C and NUL as %00. Keys may not contain '|', '=',
// '%' or NUL at all; [Collection.Add] rejects such keys. Decoding reverses
// the escaping exactly, so encode/decode round trips for any escapable
// value, including the empty string.
//
// Keys are unique case-insensitively; the first spelling wins and lookups
// fold case. Insertion order is preserved because it determines the byte
// order of re-encoded output.
//
// # Defaults
//
// The format omits attributes whose value equals the field's declared
// default. The typed setters (AddInt and friends) take that default and
// skip the pair when the value matches; the typed getters take the same
// default and return it when the key is absent. Using the same default on
// both sides makes the omission rule a provable round trip.
//
// # Unicode mode
//
// A collection with Unicode set encodes its text as UTF-16LE with a byte
// order mark. [Decode] detects the mark and sets Unicode accordingly, so a
// reader never guesses the charset of an existing file.
package params
