/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/filename"
	"github.com/NVIDIA/gridcert/pkg/report"
	"github.com/NVIDIA/gridcert/pkg/validator/geo"
	"github.com/NVIDIA/gridcert/pkg/validator/temporal"
)

// checkCoordinates runs the record status, time, latitude and longitude
// checks, each in its own subsection.
func checkCoordinates(s *report.Section, ds dataset.Dataset) {
	swath := dataset.IsSwath(ds)
	times, _ := dataset.FindCoordinates(ds, "time", "time")

	sub := s.Sub(temporal.StatusVariable)
	statuses := temporal.LoadStatus(sub, ds, times, swath)
	sub.End()

	sub = s.Sub("time")
	exp := temporal.Expect(sub, ds.Filename(), ds)
	if len(times) == 0 {
		sub.Errorf("time", "missing time variable")
	}
	for _, axis := range times {
		c := sub.Sub(axis.Path())
		temporal.Check(c, ds, axis, exp, statuses)
		c.End()
	}
	temporal.CheckCoverage(sub, ds, exp)
	sub.End()

	res, hasRes := 0.0, false
	if n, ok := filename.Decode(ds.Filename()); ok {
		res, hasRes = n.Resolution()
	}
	for _, k := range []geo.Kind{geo.Latitude, geo.Longitude} {
		sub = s.Sub(k.Long)
		axes, _ := dataset.FindCoordinates(ds, k.Long, k.Short, k.Long)
		if len(axes) == 0 {
			sub.Errorf(k.Long, "missing %s coordinate", k.Long)
		}
		for _, v := range axes {
			var timeAxis dataset.Variable
			if t, ok := dataset.MatchTimeAxis(v, times); ok {
				timeAxis = t
			}
			c := sub.Sub(v.Path())
			geo.Check(c, ds, v, timeAxis, k, res, hasRes)
			c.End()
		}
		sub.End()
	}
}
