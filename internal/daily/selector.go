package daily

import (
	"math"
	"time"
)

const (
	// seedStride decorrelates successive draws for the same day
	seedStride = 7919
	// maxAttempts bounds the search for distinct indices
	maxAttempts = 100
	// groupsPerDay is the seed multiplier reserving room for 12 groups per day
	groupsPerDay = 12
	// noGroupSentinel is the ordinal used when no group is given. It is the same
	// value as the first real group (Aries), matching existing daily cards.
	noGroupSentinel = 0
)

// Group scopes a selection, e.g. to a zodiac sign. The zero value is NoGroup.
type Group struct {
	ordinal int
	valid   bool
}

// NoGroup selects the global card of the day
var NoGroup = Group{}

// GroupOf returns the group with the given ordinal
func GroupOf(ordinal int) Group {
	return Group{ordinal: ordinal, valid: true}
}

// Ordinal is the value mixed into the seed
func (g Group) Ordinal() int {
	if !g.valid {
		return noGroupSentinel
	}
	return g.ordinal
}

// SeedFor returns (year*1000 + dayOfYear)*12 + group for the date in its own location.
func SeedFor(date time.Time, group Group) int64 {
	day := int64(date.Year())*1000 + int64(date.YearDay())
	return day*groupsPerDay + int64(group.Ordinal())
}

// SelectDailyCards picks count distinct deck indices for the date and group.
//
// Indices are returned in the order they were accepted. After maxAttempts
// draws the result may be shorter than count, which only happens when count
// approaches deckSize.
func SelectDailyCards(date time.Time, group Group, deckSize, count int) []int {
	if deckSize <= 0 || count <= 0 {
		return []int{}
	}

	base := SeedFor(date, group)
	selected := make([]int, 0, count)
	seen := make(map[int]bool, count)

	for attempt := 0; attempt < maxAttempts && len(selected) < count; attempt++ {
		seed := base + int64(attempt)*seedStride
		idx := int(math.Floor(NextFloat(seed) * float64(deckSize)))
		if idx >= deckSize {
			idx = deckSize - 1
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		selected = append(selected, idx)
	}

	return selected
}
