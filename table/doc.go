// Package table parses, validates, and serializes CMOR tables, the
// line-oriented "key: value ! comment" format used by CMIP5-era climate
// model output tooling.
//
// A table consists of a global header block followed by any number of
// axis_entry and variable_entry blocks delimited by separator comment
// lines. The parser performs a single pass over the input and produces an
// immutable [Table] holding the header attributes, the declared
// [AxisEntry] records, and the declared [VariableEntry] records in source
// order.
//
// # Parsing
//
//	tbl, err := table.ParseFile("Tables/CMIP5_cfMon")
//
// [Load] combines parsing and validation and rejects the whole file on the
// first fatal parse error or any validation problem:
//
//	tbl, err := table.Load("Tables/CMIP5_cfMon")
//
// # Validation
//
// [Table.Validate] checks required header attributes, required entry
// fields, numeric coordinate lists, the requested/requested_bounds arity
// invariant, and that every dimension token of every variable resolves to
// a declared axis, a generic level, or one of the implicit horizontal/time
// dimensions. All problems are collected into a single [ValidationError].
//
// # Serialization
//
// [Table.Format] writes the table back in native CMOR syntax such that
// reparsing yields semantically equivalent records. [Table.FormatJSON] and
// [Table.FormatYAML] emit structured representations for downstream tools.
package table
