// Package httputil provides HTTP utilities shared by the repository clients.
//
// # Date Parsing
//
// [ParseDate] converts the fixed-format HTTP date strings found in
// Last-Modified response headers into epoch-millisecond timestamps:
//
//	ms, err := httputil.ParseDate("Thu, 20 Nov 2025 09:17:38 GMT")
//	// ms == 1763630258000
//
// Parsing is strict: a string that does not match the expected pattern
// (wrong field order, missing zone suffix) returns an error rather than a
// zero timestamp.
package httputil
