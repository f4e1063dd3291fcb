package criteria

import (
	"github.com/viant/sweeper/service/dao"
)

// Match reports whether fields satisfy every parameter. Parameters naming a
// field that is not in fields are ignored.
func Match(fields map[string]string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		actual, ok := fields[parameter.Name]
		if !ok {
			continue
		}
		if !matchValue(actual, parameter.Value) {
			return false
		}
	}
	return true
}

func matchValue(actual string, value interface{}) bool {
	switch expected := value.(type) {
	case string:
		return actual == expected
	case []string:
		if len(expected) == 0 {
			return true
		}
		for _, candidate := range expected {
			if actual == candidate {
				return true
			}
		}
		return false
	}
	return true
}
