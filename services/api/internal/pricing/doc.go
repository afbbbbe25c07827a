// Package pricing derives quote estimates and orders from quote data.
//
// Every function is pure: inputs are never mutated and no state is kept
// between calls, so the package is safe for concurrent use. Amounts are kept
// at full precision; callers round with Round only when displaying or
// serializing a value.
package pricing
