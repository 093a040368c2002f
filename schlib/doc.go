// Package schlib reads and writes schematic component library files: a
// header, an ordered set of components, and the embedded assets they
// reference, laid out over a hierarchical container.
//
// # File layout
//
// The stream and storage names below are part of the wire contract:
//
//   - FileHeader: global parameter block, a little-endian component
//     count, then one length-prefixed reference name per component in
//     document order.
//   - SectionKeys (optional): the manifest of components whose storage
//     identifier differs from their reference name.
//   - One storage per component, named by its resolved section key,
//     holding the mandatory Data stream (the flattened primitive tree)
//     and, only when non-empty, the PinTextData, PinWideText and
//     PinSymbolLineWidth auxiliary streams.
//   - Storage (optional): the deduplicated embedded assets referenced by
//     image primitives, one compressed sub-block per asset name.
//
// # Failure policy
//
// A missing FileHeader, a reference-name count that disagrees with the
// component storages present, or a missing component storage or Data
// stream aborts the whole read; partial documents are never returned.
// Optional streams are treated as empty when absent. Errors carry the
// component name, stream name and, for framing failures, the byte offset.
//
// A Document must not be mutated while Write is serializing it, and a
// container handle must not be shared between concurrent operations.
package schlib
