// Package model groups the sweep data model: trial holds a single parameter
// combination and its outcome, sweep describes and expands whole sweeps.
package model
