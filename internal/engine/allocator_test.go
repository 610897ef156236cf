package engine_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"splittab/internal/domain"
	"splittab/internal/engine"
)

func newItem(price float64, quantity int) domain.Item {
	return domain.Item{
		ID:       uuid.New(),
		Name:     "item",
		Price:    price,
		Quantity: quantity,
	}
}

func split(pid uuid.UUID, t domain.SplitType, value float64) domain.Split {
	return domain.Split{
		ID:            uuid.New(),
		ParticipantID: pid,
		Type:          t,
		Value:         value,
	}
}

func TestAllocate_PrecedenceOrder(t *testing.T) {
	p1, p2, p3, p4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	item := newItem(100, 1)
	splits := []domain.Split{
		split(p1, domain.SplitFixed, 20),
		split(p2, domain.SplitPercent, 50),
		split(p3, domain.SplitEqual, 0),
		split(p4, domain.SplitEqual, 0),
	}

	shares := engine.Allocate(item, splits)

	assert.InDelta(t, 20, shares[p1], 0.001)
	assert.InDelta(t, 40, shares[p2], 0.001, "50%% of the 80 remaining after fixed")
	assert.InDelta(t, 20, shares[p3], 0.001)
	assert.InDelta(t, 20, shares[p4], 0.001)

	var total float64
	for _, v := range shares {
		total += v
	}
	assert.InDelta(t, 100, total, 0.001, "fully distributed")
}

func TestAllocate_PercentStacksSequentially(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	item := newItem(100, 1)
	splits := []domain.Split{
		split(p1, domain.SplitPercent, 50),
		split(p2, domain.SplitPercent, 50),
	}

	shares := engine.Allocate(item, splits)

	// The second 50% applies to the 50 remaining after the first, not to the
	// original 100.
	assert.InDelta(t, 50, shares[p1], 0.001)
	assert.InDelta(t, 25, shares[p2], 0.001)
}

func TestAllocate_LeftoverWithoutEqualSplitsIsDropped(t *testing.T) {
	p1 := uuid.New()
	item := newItem(100, 1)
	splits := []domain.Split{
		split(p1, domain.SplitFixed, 30),
	}

	shares := engine.Allocate(item, splits)

	assert.Len(t, shares, 1)
	assert.InDelta(t, 30, shares[p1], 0.001)
	// The remaining 70 is intentionally unassigned.
}

func TestAllocate_QuantitySplit(t *testing.T) {
	p1 := uuid.New()
	item := newItem(90, 3)
	splits := []domain.Split{
		split(p1, domain.SplitQuantity, 2),
	}

	shares := engine.Allocate(item, splits)

	assert.InDelta(t, 60, shares[p1], 0.001, "2 units at 30 each")
}

func TestAllocate_QuantityThenEqualRemainder(t *testing.T) {
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	item := newItem(90, 3)
	splits := []domain.Split{
		split(p1, domain.SplitQuantity, 1),
		split(p2, domain.SplitEqual, 0),
		split(p3, domain.SplitEqual, 0),
	}

	shares := engine.Allocate(item, splits)

	assert.InDelta(t, 30, shares[p1], 0.001)
	assert.InDelta(t, 30, shares[p2], 0.001)
	assert.InDelta(t, 30, shares[p3], 0.001)
}

func TestAllocate_FixedMayExceedPrice(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	item := newItem(50, 1)
	splits := []domain.Split{
		split(p1, domain.SplitFixed, 80),
		split(p2, domain.SplitEqual, 0),
	}

	shares := engine.Allocate(item, splits)

	// No clamping: the equal split absorbs the negative remainder.
	assert.InDelta(t, 80, shares[p1], 0.001)
	assert.InDelta(t, -30, shares[p2], 0.001)
}

func TestAllocate_MixedAllFourTypes(t *testing.T) {
	p1, p2, p3, p4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	item := newItem(200, 4) // unit price 50
	splits := []domain.Split{
		split(p1, domain.SplitFixed, 40),
		split(p2, domain.SplitQuantity, 2),
		split(p3, domain.SplitPercent, 50),
		split(p4, domain.SplitEqual, 0),
	}

	shares := engine.Allocate(item, splits)

	// 200 - 40 fixed - 100 quantity = 60; 50% of 60 = 30; equal gets the rest.
	assert.InDelta(t, 40, shares[p1], 0.001)
	assert.InDelta(t, 100, shares[p2], 0.001)
	assert.InDelta(t, 30, shares[p3], 0.001)
	assert.InDelta(t, 30, shares[p4], 0.001)
}

func TestAllocate_NoSplits(t *testing.T) {
	shares := engine.Allocate(newItem(100, 1), nil)
	assert.Empty(t, shares)
}

func TestAllocate_ZeroQuantityItemSkipsQuantitySplits(t *testing.T) {
	p1 := uuid.New()
	item := newItem(100, 0)
	splits := []domain.Split{
		split(p1, domain.SplitQuantity, 2),
	}

	shares := engine.Allocate(item, splits)

	assert.NotContains(t, shares, p1)
}
