package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/networth-projector/internal/domain"
)

// AssetCSVFormatter writes every asset trace in configuration order, each
// asset's rows in period order.
type AssetCSVFormatter struct{}

func (c AssetCSVFormatter) Name() string { return "assets-csv" }

func (c AssetCSVFormatter) Format(p *domain.Projection) ([]byte, error) {
	if p == nil {
		return nil, errNilProjection
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(domain.AssetSnapshotHeader); err != nil {
		return nil, err
	}
	for _, name := range p.AssetOrder {
		for _, snap := range p.AssetTraces[name] {
			if err := w.Write(snap.Record()); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
