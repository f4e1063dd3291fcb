// Package host inspects the machine a sweep runs on.
package host
