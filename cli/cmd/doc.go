// Package cmd implements the cmortab subcommands.
//
// Each command parses one CMOR table from a file path argument (or stdin
// when the argument is "-") and operates on the resulting [table.Table]:
//
//   - validate: parse and check the table against the format invariants
//   - fmt:      reformat as native syntax, JSON, or YAML
//   - list:     print entries matching a filter expression
//   - find:     fuzzy-search entries by name
//   - browse:   interactive terminal browser
//   - export:   write a NetCDF skeleton file
package cmd
