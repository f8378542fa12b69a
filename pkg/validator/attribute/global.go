/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package attribute

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/report"
	"github.com/NVIDIA/gridcert/pkg/standard"
)

// filenameAttribute must equal the base name of the file when present.
const filenameAttribute = "filename"

// CheckGlobal validates the root attributes of ds against cat and writes the
// verdicts to s. p.References defaults to the "references" attribute.
func CheckGlobal(ctx context.Context, s *report.Section, ds dataset.Dataset, cat *standard.Catalog, e *Evaluator, p standard.Placeholders) {
	if p.References == "" {
		p.References, _ = dataset.Text(ds, "references")
	}

	for _, entry := range cat.Entries {
		if ctx.Err() != nil {
			return
		}
		if ds.Has(entry.ID) {
			continue
		}
		e.Evaluate(ctx, entry.ID, nil, entry).Apply(s)
	}

	ids := cat.IDs()
	for _, name := range ds.Names() {
		if ctx.Err() != nil {
			return
		}
		value, _ := ds.Get(name)
		s.Printf("\n%s:", name)

		if name == filenameAttribute {
			if text, ok := value.Text(); !ok || text != ds.Filename() {
				s.Errorf(name, "attribute %s does not match filename, found: '%s'", name, value.String())
			}
		}

		entry, ok := cat.Entry(name)
		if !ok {
			if c, near := closest(name, ids); near {
				s.Infof(name, "attribute not in metadata standard, did you mean '%s'?", c)
			} else {
				s.Printf("%s", value.String())
			}
			continue
		}
		res := e.Evaluate(ctx, name, &value, entry.Evaluated(p))
		res.Apply(s)
		slog.Debug("evaluated attribute", "name", name, "errors", res.Errors(), "warnings", res.Warnings())
	}
}
