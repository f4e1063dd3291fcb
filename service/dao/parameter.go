package dao

// Parameter narrows List results. Value is a string or []string; a record
// matches when its field equals any of the values.
type Parameter struct {
	Name  string
	Value interface{}
}

const (
	// StatusParameter filters outcomes by trial status.
	StatusParameter = "Status"
	// RunParameter filters outcomes by run ID.
	RunParameter = "RunID"
)

func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
