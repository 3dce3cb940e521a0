package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextFloat(t *testing.T) {
	t.Run("golden values", func(t *testing.T) {
		assert.Equal(t, 0.0, NextFloat(0))
		assert.InDelta(t, 0.709848078965, NextFloat(1), 1e-9)
		assert.InDelta(t, 0.784520843663, NextFloat(42), 1e-9)
		assert.InDelta(t, 0.862153208198, NextFloat(24300012), 1e-6)
	})

	t.Run("range", func(t *testing.T) {
		for seed := int64(-5000); seed < 5000; seed++ {
			r := NextFloat(seed)
			require.GreaterOrEqual(t, r, 0.0)
			require.Less(t, r, 1.0)
		}
	})

	t.Run("pure", func(t *testing.T) {
		assert.Equal(t, NextFloat(987654321), NextFloat(987654321))
	})
}

func TestSeedFor(t *testing.T) {
	assert.Equal(t, int64(24300012), SeedFor(date(2025, 1, 1), NoGroup))
	assert.Equal(t, int64(24300017), SeedFor(date(2025, 1, 1), GroupOf(5)))
	assert.Equal(t, int64(24292392), SeedFor(date(2024, 12, 31), NoGroup))
}

func TestSeedForNoGroupMatchesFirstGroup(t *testing.T) {
	// The global card shares its seed with group 0 (Aries). Kept on purpose so
	// existing daily cards stay reproducible.
	d := date(2025, 6, 1)
	assert.Equal(t, SeedFor(d, GroupOf(0)), SeedFor(d, NoGroup))
	assert.Equal(t, SelectDailyCards(d, GroupOf(0), 78, 3), SelectDailyCards(d, NoGroup, 78, 3))
}

func TestSelectDailyCardsGolden(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		group Group
		count int
		want  []int
	}{
		{"new year global card", date(2025, 1, 1), NoGroup, 1, []int{67}},
		{"new year triad", date(2025, 1, 1), NoGroup, 3, []int{67, 51, 58}},
		{"new year group 5", date(2025, 1, 1), GroupOf(5), 1, []int{9}},
		{"new year group 11 triad", date(2025, 1, 1), GroupOf(11), 3, []int{3, 55, 67}},
		{"leap year last day", date(2024, 12, 31), NoGroup, 3, []int{33, 75, 17}},
		{"leo on first of august", date(2025, 8, 1), GroupOf(4), 1, []int{31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectDailyCards(tt.date, tt.group, 78, tt.count))
		})
	}
}

func TestSelectDailyCardsDeterministic(t *testing.T) {
	d := date(2025, 1, 1)
	first := SelectDailyCards(d, NoGroup, 78, 1)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, SelectDailyCards(d, NoGroup, 78, 1))
	}

	// wall-clock time within the day does not matter
	assert.Equal(t, first, SelectDailyCards(d.Add(23*time.Hour), NoGroup, 78, 1))
}

func TestSelectDailyCardsBoundedAndDistinct(t *testing.T) {
	start := date(2024, 1, 1)
	cases := 0
	for ordinal := 0; ordinal < 12; ordinal++ {
		for day := 0; day < 366; day++ {
			d := start.AddDate(0, 0, day)
			for _, count := range []int{1, 3} {
				got := SelectDailyCards(d, GroupOf(ordinal), 78, count)
				require.Len(t, got, count, "date %s group %d", d.Format(DateLayout), ordinal)

				seen := make(map[int]bool)
				for _, idx := range got {
					require.False(t, seen[idx], "duplicate index %d on %s", idx, d.Format(DateLayout))
					require.GreaterOrEqual(t, idx, 0)
					require.Less(t, idx, 78)
					seen[idx] = true
				}
			}
			cases++
		}
	}
	assert.Equal(t, 4392, cases)
}

func TestSelectDailyCardsVariesAcrossDays(t *testing.T) {
	// Statistical expectation, not a guarantee: consecutive triads differ.
	start := date(2025, 1, 1)
	differing := 0
	for day := 0; day < 60; day++ {
		a := SelectDailyCards(start.AddDate(0, 0, day), NoGroup, 78, 3)
		b := SelectDailyCards(start.AddDate(0, 0, day+1), NoGroup, 78, 3)
		if !assert.ObjectsAreEqual(a, b) {
			differing++
		}
	}
	assert.GreaterOrEqual(t, differing, 55)
}

func TestSelectDailyCardsShortResult(t *testing.T) {
	d := date(2025, 1, 1)

	got := SelectDailyCards(d, NoGroup, 3, 10)
	assert.Len(t, got, 3)
	assert.ElementsMatch(t, []int{0, 1, 2}, got)

	got = SelectDailyCards(d, NoGroup, 5, 5)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, got)
}

func TestSelectDailyCardsDegenerate(t *testing.T) {
	d := date(2025, 1, 1)
	assert.Empty(t, SelectDailyCards(d, NoGroup, 0, 1))
	assert.Empty(t, SelectDailyCards(d, NoGroup, 78, 0))
	assert.Empty(t, SelectDailyCards(d, NoGroup, -1, -1))
}
