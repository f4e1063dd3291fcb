package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/sweeper/service/dao"
)

func TestMatch(t *testing.T) {
	fields := map[string]string{dao.StatusParameter: "timedOut", dao.RunParameter: "run-1"}
	var testCases = []struct {
		description string
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no parameters", expect: true},
		{description: "single value match", parameters: []*dao.Parameter{dao.NewParameter(dao.StatusParameter, "timedOut")}, expect: true},
		{description: "single value mismatch", parameters: []*dao.Parameter{dao.NewParameter(dao.StatusParameter, "completed")}},
		{description: "any of values", parameters: []*dao.Parameter{dao.NewParameter(dao.StatusParameter, "failed", "timedOut")}, expect: true},
		{description: "none of values", parameters: []*dao.Parameter{dao.NewParameter(dao.StatusParameter, "failed", "completed")}},
		{description: "empty values", parameters: []*dao.Parameter{dao.NewParameter(dao.StatusParameter)}, expect: true},
		{description: "unknown field ignored", parameters: []*dao.Parameter{dao.NewParameter("Other", "x")}, expect: true},
		{
			description: "all parameters must match",
			parameters: []*dao.Parameter{
				dao.NewParameter(dao.StatusParameter, "timedOut"),
				dao.NewParameter(dao.RunParameter, "run-2"),
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, Match(fields, testCase.parameters))
		})
	}
}
