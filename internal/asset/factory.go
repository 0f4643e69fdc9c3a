package asset

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rpgo/networth-projector/internal/domain"
)

// New instantiates the asset variant matching the descriptor's kind.
func New(desc domain.AssetDescriptor, rng *rand.Rand) (Asset, error) {
	switch desc.Kind {
	case domain.KindRealEstate:
		if desc.RealEstate == nil {
			return nil, missingBlock(desc)
		}
		return NewRealEstate(desc), nil
	case domain.KindEquity:
		if desc.Equity == nil {
			return nil, missingBlock(desc)
		}
		return NewEquity(desc, rng), nil
	case domain.KindSalary:
		if desc.Salary == nil {
			return nil, missingBlock(desc)
		}
		return NewSalary(desc), nil
	default:
		return nil, fmt.Errorf("asset %s: kind %q: %w", desc.Name, desc.Kind, ErrUnknownKind)
	}
}

func missingBlock(desc domain.AssetDescriptor) error {
	return fmt.Errorf("asset %s: kind %s requires a %s block", desc.Name, desc.Kind, desc.Kind)
}

// NewAll builds every descriptor whose name contains filter (case-insensitive;
// empty matches all). Each asset gets its own random source seeded from seed
// plus its position in descs, so filtering never changes another asset's draws.
func NewAll(descs []domain.AssetDescriptor, filter string, seed int64) ([]Asset, error) {
	filter = strings.ToLower(filter)
	assets := make([]Asset, 0, len(descs))
	for i, desc := range descs {
		if filter != "" && !strings.Contains(strings.ToLower(desc.Name), filter) {
			continue
		}
		a, err := New(desc, rand.New(rand.NewSource(seed+int64(i))))
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}
