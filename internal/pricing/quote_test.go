package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowrent/internal/domain"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := Default()
	require.NoError(t, err)
	return table
}

func adult(tier domain.BoardTier, bundle domain.Bundle) domain.RentalPerson {
	return domain.RentalPerson{
		Name:       "Ken",
		Age:        intPtr(30),
		BoardTier:  tier,
		Bundle:     bundle,
		Outerwear:  domain.OuterwearNone,
		HelmetOnly: boolPtr(false),
		FastWear:   boolPtr(false),
	}
}

func sameStore(start, end string, persons ...domain.RentalPerson) Request {
	return Request{
		StartDate:   date(start),
		EndDate:     date(end),
		RentStore:   domain.StoreFurano,
		ReturnStore: domain.StoreFurano,
		Persons:     persons,
	}
}

func TestComputeQuote_AdultStandardBoardBootsThreeDays(t *testing.T) {
	table := newTestTable(t)
	req := sameStore("2026-01-10", "2026-01-12", adult(domain.TierStandard, domain.BundleBoardBoots))

	q, err := ComputeQuote(table, req)

	require.NoError(t, err)
	require.Len(t, q.Detail, 1)
	want := table.Adult.Tiers[domain.TierStandard][domain.BundleBoardBoots][2]
	assert.Equal(t, 19000, want)
	assert.Equal(t, want, q.Detail[0].Main)
	assert.Equal(t, want, q.Detail[0].Subtotal)
	assert.Equal(t, want, q.Total)
	assert.Equal(t, 3, q.Days)
	assert.Equal(t, 1, q.Detail[0].Index)
	assert.Equal(t, domain.ClassAdult, q.Detail[0].Class)
}

func TestComputeQuote_ChildPowderHasNoRate(t *testing.T) {
	table := newTestTable(t)
	child := adult(domain.TierPowder, domain.BundleFullSet)
	child.Age = intPtr(10)

	q, err := ComputeQuote(table, sameStore("2026-01-10", "2026-01-16", child))

	assert.Nil(t, q)
	pe, ok := IsPricingError(err)
	require.True(t, ok)
	assert.Equal(t, 1, pe.PersonIndex)
	assert.Equal(t, domain.ClassChild, pe.Class)
	assert.Equal(t, domain.TierPowder, pe.Tier)
}

func TestComputeQuote_ChildStandardSevenDays(t *testing.T) {
	table := newTestTable(t)
	child := adult(domain.TierStandard, domain.BundleFullSet)
	child.Age = intPtr(10)

	q, err := ComputeQuote(table, sameStore("2026-01-10", "2026-01-16", child))

	require.NoError(t, err)
	// 5-day rate plus two extra days
	assert.Equal(t, 22000+2*3000, q.Detail[0].Main)
	assert.Equal(t, domain.ClassChild, q.Detail[0].Class)
}

func TestComputeQuote_FullSetIgnoresOuterwearAndHelmet(t *testing.T) {
	table := newTestTable(t)
	p := adult(domain.TierAdvanced, domain.BundleFullSet)
	p.Outerwear = domain.OuterwearFullSet
	p.HelmetOnly = boolPtr(true)

	q, err := ComputeQuote(table, sameStore("2026-01-10", "2026-01-11", p))

	require.NoError(t, err)
	assert.Zero(t, q.Detail[0].Outerwear)
	assert.Zero(t, q.Detail[0].Helmet)
	assert.Equal(t, 21500, q.Detail[0].Subtotal)
}

func TestComputeQuote_ExtrasOnBoardOnly(t *testing.T) {
	table := newTestTable(t)
	p := adult(domain.TierStandard, domain.BundleBoardOnly)
	p.Outerwear = domain.OuterwearFullSet
	p.HelmetOnly = boolPtr(true)
	p.FastWear = boolPtr(true)

	q, err := ComputeQuote(table, sameStore("2026-01-10", "2026-01-10", p))

	require.NoError(t, err)
	d := q.Detail[0]
	assert.Equal(t, 6500, d.Main)
	assert.Equal(t, 5000, d.Outerwear)
	assert.Equal(t, 1500, d.Helmet)
	assert.Equal(t, 2000, d.FastWear)
	assert.Zero(t, d.Boots)
	assert.Equal(t, 15000, d.Subtotal)
}

func TestComputeQuote_SingleOuterwearUsesSingleRate(t *testing.T) {
	table := newTestTable(t)
	p := adult(domain.TierStandard, domain.BundleBoardBoots)
	p.Age = intPtr(12)
	p.Outerwear = domain.OuterwearPants

	q, err := ComputeQuote(table, sameStore("2026-01-10", "2026-01-11", p))

	require.NoError(t, err)
	assert.Equal(t, 3500, q.Detail[0].Outerwear)
}

func TestComputeQuote_LongStayAccruesExtraDays(t *testing.T) {
	table := newTestTable(t)
	p := adult(domain.TierAdvanced, domain.BundleBoardBoots)
	p.FastWear = boolPtr(true)

	q, err := ComputeQuote(table, sameStore("2026-01-10", "2026-01-17", p))

	require.NoError(t, err)
	assert.Equal(t, 8, q.Days)
	assert.Equal(t, 37000+3*5000, q.Detail[0].Main)
	assert.Equal(t, 2000+3*2000, q.Detail[0].FastWear)
}

func TestComputeQuote_CrossStoreSurchargePerPerson(t *testing.T) {
	table := newTestTable(t)
	req := sameStore("2026-01-10", "2026-01-12",
		adult(domain.TierStandard, domain.BundleBoardBoots),
		adult(domain.TierPowder, domain.BundleBoardOnly),
	)

	same, err := ComputeQuote(table, req)
	require.NoError(t, err)

	req.ReturnStore = domain.StoreAsahikawa
	cross, err := ComputeQuote(table, req)
	require.NoError(t, err)

	assert.Equal(t, same.Total+2*table.CrossStoreSurcharge, cross.Total)
	for i := range cross.Detail {
		assert.Zero(t, same.Detail[i].CrossStore)
		assert.Equal(t, table.CrossStoreSurcharge, cross.Detail[i].CrossStore)
	}
}

func TestComputeQuote_DeterministicAndOrdered(t *testing.T) {
	table := newTestTable(t)
	second := adult(domain.TierPowder, domain.BundleFullSet)
	second.Name = "Yui"
	req := sameStore("2026-01-10", "2026-01-13",
		adult(domain.TierStandard, domain.BundleBoardOnly),
		second,
	)

	first, err := ComputeQuote(table, req)
	require.NoError(t, err)
	again, err := ComputeQuote(table, req)
	require.NoError(t, err)

	assert.Equal(t, first, again)
	assert.Equal(t, 1, first.Detail[0].Index)
	assert.Equal(t, 2, first.Detail[1].Index)
	assert.Equal(t, 21500, first.Detail[0].Main)
	assert.Equal(t, 42000, first.Detail[1].Main)
}

func TestComputeQuote_UnansweredBundle(t *testing.T) {
	table := newTestTable(t)
	p := adult(domain.TierStandard, "")

	_, err := ComputeQuote(table, sameStore("2026-01-10", "2026-01-10", p))

	_, ok := IsPricingError(err)
	assert.True(t, ok)
}

func TestComputeQuote_NoPersons(t *testing.T) {
	q, err := ComputeQuote(newTestTable(t), sameStore("2026-01-10", "2026-01-10"))

	require.NoError(t, err)
	assert.Zero(t, q.Total)
	assert.Empty(t, q.Detail)
}
