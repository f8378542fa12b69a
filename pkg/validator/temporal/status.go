/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package temporal

import (
	"strings"

	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/report"
)

// StatusVariable is the name of per-record status variables.
const StatusVariable = "record_status"

// Status is a decoded record_status variable.
type Status struct {
	Variable dataset.Variable
	// Flags maps flag_values to the words of flag_meanings.
	Flags map[float64]string
	Data  *dataset.Array
	// Time is the time axis the variable belongs to.
	Time dataset.Variable
}

// Flag returns the meaning of record i. Scalar variables apply to every
// record. ok is false for masked or undeclared values.
func (st *Status) Flag(i int) (meaning string, value float64, ok bool) {
	if st.Data == nil || st.Data.Len() == 0 {
		return "", 0, false
	}
	if len(st.Variable.Dimensions()) == 0 {
		i = 0
	}
	if i >= len(st.Data.Values) {
		return "", 0, false
	}
	value = st.Data.Values[i]
	if st.Data.Masked(i) || st.Flags == nil {
		return "", value, false
	}
	meaning, ok = st.Flags[value]
	return meaning, value, ok
}

// StatusSet holds the record_status variables by group path.
type StatusSet map[string]*Status

// For returns the status variable in the group of axis.
func (set StatusSet) For(axis dataset.Variable) (*Status, bool) {
	st, ok := set[axis.Group().Path()]
	return st, ok
}

// LoadStatus decodes every record_status variable of root and matches it to
// one of the time axes. A missing variable is an error unless the data is
// swath organized.
func LoadStatus(s *report.Section, root dataset.Group, axes []dataset.Variable, swath bool) StatusSet {
	set := StatusSet{}
	vars := dataset.FindByName(root, StatusVariable)
	if len(vars) == 0 && !swath {
		s.Errorf(StatusVariable, "missing %s variable", StatusVariable)
	}

	for _, v := range vars {
		s.Printf("%s", v.Path())
		st := &Status{Variable: v}

		values, hasValues := v.Get("flag_values")
		meanings, hasMeanings := dataset.Text(v, "flag_meanings")
		if hasValues && hasMeanings {
			words := strings.Fields(meanings)
			st.Flags = make(map[float64]string, len(words))
			for i, f := range values.Floats() {
				if i < len(words) {
					st.Flags[f] = words[i]
				}
			}
			data, err := v.Data()
			if err != nil {
				s.Errorf(StatusVariable, "cannot read '%s': %v", v.Path(), err)
			}
			st.Data = data
		} else {
			s.Errorf(StatusVariable, "missing valid variable '%s'", v.Path())
		}

		if axis, ok := dataset.MatchTimeAxis(v, axes); ok {
			st.Time = axis
			if !dataset.HasDimension(v, axis.Name()) {
				s.Errorf(StatusVariable, "missing time dimension for '%s'", v.Path())
			}
		} else {
			s.Errorf(StatusVariable, "missing valid time for '%s'", v.Path())
		}
		set[v.Group().Path()] = st
	}
	return set
}
