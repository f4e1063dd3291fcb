// Package idgen issues run identifiers. Tests may replace NewFunc to get
// predictable IDs; callers treat identifiers as opaque strings.
package idgen
