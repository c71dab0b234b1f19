package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Get(t *testing.T) {
	c := NewCatalog("price_pro", "price_biz")

	free := c.Get(Free)
	assert.Equal(t, 1, free.JobsLimit)
	assert.Equal(t, 50, free.ResumesLimit)
	assert.Equal(t, []string{"Basic AI parsing", "Manual emails"}, free.Features)

	pro := c.Get(Pro)
	assert.Equal(t, 99, pro.Price)
	assert.Equal(t, 5, pro.JobsLimit)
	assert.Equal(t, 500, pro.ResumesLimit)
	assert.Equal(t, "price_pro", pro.PriceID)

	biz := c.Get(Business)
	assert.Equal(t, 20, biz.JobsLimit)
	assert.Equal(t, Unlimited, biz.ResumesLimit)
}

func TestCatalog_UnknownPlanFallsBackToFree(t *testing.T) {
	c := NewCatalog("", "")

	for _, name := range []string{"nonexistent-plan", "", "PRO", "enterprise"} {
		assert.Equal(t, c.Get(Free), c.Get(name), "plan %q", name)
	}
}

func TestAllowed(t *testing.T) {
	for _, count := range []int{0, 1, 10, 1000, 1 << 30} {
		assert.True(t, Allowed(Unlimited, count), "unlimited with count %d", count)
	}

	assert.True(t, Allowed(1, 0))
	assert.False(t, Allowed(1, 1))
	assert.False(t, Allowed(1, 2))
	assert.True(t, Allowed(5, 4))
	assert.False(t, Allowed(0, 0))
}

func TestCatalog_EnforceCreationLimit(t *testing.T) {
	c := NewCatalog("", "")

	assert.True(t, c.EnforceCreationLimit(Free, KindJob, 0))
	assert.False(t, c.EnforceCreationLimit(Free, KindJob, 1))
	assert.True(t, c.EnforceCreationLimit(Free, KindResume, 49))
	assert.False(t, c.EnforceCreationLimit(Free, KindResume, 50))

	assert.True(t, c.EnforceCreationLimit(Business, KindResume, 100000))
	assert.False(t, c.EnforceCreationLimit(Business, KindJob, 20))

	// неизвестный тариф считается free
	assert.False(t, c.EnforceCreationLimit("gold", KindJob, 1))
}

func TestCatalog_Payable(t *testing.T) {
	c := NewCatalog("price_pro", "price_biz")

	assert.False(t, c.Payable(Free))
	assert.False(t, c.Payable("unknown"))
	assert.True(t, c.Payable(Pro))
	assert.True(t, c.Payable(Business))
}

func TestCatalog_PlanByPriceID(t *testing.T) {
	c := NewCatalog("price_pro", "price_biz")

	plan, ok := c.PlanByPriceID("price_biz")
	require.True(t, ok)
	assert.Equal(t, Business, plan)

	_, ok = c.PlanByPriceID("")
	assert.False(t, ok)
	_, ok = c.PlanByPriceID("price_other")
	assert.False(t, ok)
}

func TestCatalog_AllSortedByPrice(t *testing.T) {
	all := NewCatalog("", "").All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{Free, Pro, Business}, []string{all[0].Name, all[1].Name, all[2].Name})
}
