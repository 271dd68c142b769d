package criteria

import (
	"github.com/viant/ossim/service/dao"
)

// FilterByState reports whether state satisfies the State parameters. Records
// pass when no State parameter is given.
func FilterByState[S ~string](state S, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != dao.StateParameter {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			return string(state) == actual
		case []string:
			for _, s := range actual {
				if string(state) == s {
					return true
				}
			}
			return false
		}
	}
	return true
}
