package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/networth-projector/internal/domain"
)

// ModelCSVFormatter writes the model-level trace, one row per period.
type ModelCSVFormatter struct{}

func (c ModelCSVFormatter) Name() string { return "model-csv" }

func (c ModelCSVFormatter) Format(p *domain.Projection) ([]byte, error) {
	if p == nil {
		return nil, errNilProjection
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(domain.PeriodRowHeader); err != nil {
		return nil, err
	}
	for _, row := range p.Periods {
		if err := w.Write(row.Record()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
