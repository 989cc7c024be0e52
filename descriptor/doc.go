// Package descriptor parses chain descriptors and builds filter chains
// from them.
//
// A descriptor lists stages separated by commas. Each stage is a filter
// name, optionally followed by '=' and a colon-separated list of key=value
// options:
//
//	tok,concat
//	tok=delim=?:flush_str=x!x!x:flush_nr=3,tok=delim=!
//
// Keys and values may escape any byte with a backslash or wrap text in
// single quotes, so separators can appear in option values:
//
//	tok=delim=\,\:
//	tok=flush_str='a,b'
//
// Chains can also be kept in a YAML catalog and built by name.
package descriptor
