/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"path/filepath"
	"time"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
	"github.com/NVIDIA/gridcert/pkg/filename"
)

// Missing-file cadence classes.
const (
	MissingFromFilename = "filename"
	MissingDaily        = "d"
	MissingMonthly      = "m"
	MissingHourly       = "h"
	MissingQuarterHour  = "M15"
)

// MissingClasses lists the accepted cadence classes.
var MissingClasses = []string{MissingFromFilename, MissingDaily, MissingMonthly, MissingHourly, MissingQuarterHour}

var steps = map[string]time.Duration{
	MissingDaily:       24 * time.Hour,
	MissingMonthly:     31 * 24 * time.Hour,
	MissingHourly:      time.Hour,
	MissingQuarterHour: 15 * time.Minute,
}

// stampLayout is the date and time of day in a file name, from the sixth
// character on.
const (
	stampLayout = "200601021504"
	stampOffset = 5
)

// Detector reports the files missing from a sorted sequence.
type Detector struct {
	class string
	step  time.Duration
	last  time.Time
	seen  bool
}

// NewDetector returns a detector for class. MissingFromFilename takes the
// class from the temporal class of first, the first file of the sequence.
// ok is false when the class has no cadence.
func NewDetector(class, first string) (d *Detector, ok bool, err error) {
	if class == MissingFromFilename {
		n, decoded := filename.Decode(filepath.Base(first))
		if !decoded {
			return nil, false, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
				"cannot derive the file cadence from a non standard file name", map[string]any{"file": first})
		}
		class = string(rune(n.Temporal))
	}
	step, ok := steps[class]
	if !ok {
		return nil, false, nil
	}
	return &Detector{class: class, step: step}, true, nil
}

// ValidClass reports whether class is a known cadence class.
func ValidClass(class string) bool {
	if class == MissingFromFilename {
		return true
	}
	_, ok := steps[class]
	return ok
}

// Next takes the next file of the sequence and returns the instants of the
// files missing before it. Files without a decodable time stamp are skipped.
func (d *Detector) Next(path string) ([]time.Time, bool) {
	t, ok := stamp(filepath.Base(path))
	if !ok {
		return nil, false
	}
	var missing []time.Time
	if d.seen {
		for next := d.advance(d.last); t.After(next); next = d.advance(next) {
			missing = append(missing, next)
		}
	}
	d.last, d.seen = t, true
	return missing, true
}

func (d *Detector) advance(t time.Time) time.Time {
	next := t.Add(d.step)
	if d.class == MissingMonthly {
		next = time.Date(next.Year(), next.Month(), 1, next.Hour(), next.Minute(), next.Second(), 0, time.UTC)
	}
	return next
}

func stamp(name string) (time.Time, bool) {
	if len(name) < stampOffset+len(stampLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(stampLayout, name[stampOffset:stampOffset+len(stampLayout)], time.UTC)
	return t, err == nil
}
