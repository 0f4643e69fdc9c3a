package output

import (
	"encoding/json"

	"github.com/rpgo/networth-projector/internal/domain"
)

// JSONFormatter serializes the projection as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(p *domain.Projection) ([]byte, error) {
	if p == nil {
		return nil, errNilProjection
	}
	return json.MarshalIndent(p, "", "  ")
}
