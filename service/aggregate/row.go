package aggregate

import (
	"math"
	"strconv"
	"strings"

	"github.com/viant/sweeper/model/trial"
)

// Header is the summary table header.
var Header = []string{"data", "algorithm", "server", "replica", "node", "cost", "time"}

// Row is one summarised trial.
type Row struct {
	Name string
	trial.Spec
	// Cost is kept verbatim as printed by the program.
	Cost    string
	Seconds float64
}

// Record returns the row as summary table fields.
func (r *Row) Record() []string {
	return []string{
		r.Dataset,
		string(r.Algorithm),
		strconv.Itoa(r.Servers),
		strconv.Itoa(r.Replicas),
		strconv.Itoa(r.Nodes),
		r.Cost,
		formatSeconds(r.Seconds),
	}
}

// formatSeconds prints the shortest representation that round-trips and
// always keeps a fractional part, e.g. 12 -> "12.0", 0.25 -> "0.25".
func formatSeconds(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	ret := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(ret, ".") {
		ret += ".0"
	}
	return ret
}
