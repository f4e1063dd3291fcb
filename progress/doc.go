// Package progress tracks the run counter of a sweep: how many trials were
// admitted, how many are running and how many finished with each status.
package progress
