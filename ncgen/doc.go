// Package ncgen writes NetCDF skeleton files from parsed tables.
//
// A skeleton file declares every dimension, coordinate variable, and data
// variable a compliant model output file would contain, with coordinate
// values taken from the table's requested lists and data variables filled
// with the table's missing value. The result is a valid NetCDF classic
// file usable as a template or for testing downstream tooling.
package ncgen
