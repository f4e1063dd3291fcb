// Package aggregate turns a directory of trial outputs into one summary
// table. Each output file contributes its last "cost,time_ms" record; the
// trial parameters are recovered from the file name.
package aggregate
