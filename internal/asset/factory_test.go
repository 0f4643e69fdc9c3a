package asset

import (
	"errors"
	"testing"

	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchesOnKind(t *testing.T) {
	tests := []struct {
		desc domain.AssetDescriptor
		want any
	}{
		{realEstateDesc("2020-01-01", "2030-01-01"), &RealEstate{}},
		{equityDesc("2020-01-01", "2030-01-01"), &Equity{}},
		{salaryDesc("2020-01-01", "2030-01-01"), &Salary{}},
	}
	for _, tt := range tests {
		a, err := New(tt.desc, nil)
		require.NoError(t, err)
		assert.IsType(t, tt.want, a)
		assert.Equal(t, tt.desc.Kind, a.Kind())
		assert.Equal(t, domain.StateDormant, a.State())
	}
}

func TestNewRejectsBadDescriptors(t *testing.T) {
	unknown := equityDesc("2020-01-01", "2030-01-01")
	unknown.Kind = "bond_ladder"
	_, err := New(unknown, nil)
	assert.True(t, errors.Is(err, ErrUnknownKind))

	missing := equityDesc("2020-01-01", "2030-01-01")
	missing.Equity = nil
	_, err = New(missing, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a equity block")
}

func TestNewDefaultsOpenBoundsToScenario(t *testing.T) {
	desc := salaryDesc("2020-01-01", "2030-01-01")
	desc.StartDate = domain.DateRef{}
	desc.EndDate = domain.DateRef{}
	a, err := New(desc, nil)
	require.NoError(t, err)

	l := lifeOf(a)
	assert.Equal(t, domain.TokenFirstDate, l.StartDate().Token)
	assert.Equal(t, domain.TokenEndDate, l.EndDate().Token)
}

func TestNewAllFilter(t *testing.T) {
	stocks := equityDesc("2020-01-01", "2030-01-01")
	stocks.Name = "Stock Index"
	stocks.Equity.Volatility = d("0.18")
	bonds := equityDesc("2020-01-01", "2030-01-01")
	bonds.Name = "Bond Fund"
	bonds.Equity.Volatility = d("0.05")
	descs := []domain.AssetDescriptor{stocks, bonds, salaryDesc("2020-01-01", "2030-01-01")}

	all, err := NewAll(descs, "", 9)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := NewAll(descs, "BOND", 9)
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "Bond Fund", some[0].Name())

	// the filtered bond fund draws the same returns as in the full set
	for _, a := range []Asset{all[1], some[0]} {
		require.NoError(t, a.BindDates(testBindings))
	}
	for i, date := range months(t, "2020-01-01", "2020-12-01") {
		_, err := all[1].PeriodUpdate(i, date)
		require.NoError(t, err)
		_, err = some[0].PeriodUpdate(i, date)
		require.NoError(t, err)
	}
	assert.True(t, all[1].Value().Equal(some[0].Value()))

	descs[2].Kind = "mystery"
	_, err = NewAll(descs, "", 9)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}
