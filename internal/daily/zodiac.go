package daily

import (
	"strings"
	"time"
)

// Element groups signs
type Element string

const (
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
)

// Sign is a zodiac sign with its tropical date range
type Sign struct {
	ID         string     `json:"id"`
	Ordinal    int        `json:"ordinal"`
	Name       string     `json:"name"`
	NamePT     string     `json:"name_pt"`
	Element    Element    `json:"element"`
	StartMonth time.Month `json:"start_month"`
	StartDay   int        `json:"start_day"`
	EndMonth   time.Month `json:"end_month"`
	EndDay     int        `json:"end_day"`
}

// Group returns the selection group for this sign
func (s Sign) Group() Group {
	return GroupOf(s.Ordinal)
}

// Ordinals are part of the daily seed; do not reorder.
var signs = []Sign{
	{"aries", 0, "Aries", "Áries", ElementFire, time.March, 21, time.April, 19},
	{"taurus", 1, "Taurus", "Touro", ElementEarth, time.April, 20, time.May, 20},
	{"gemini", 2, "Gemini", "Gêmeos", ElementAir, time.May, 21, time.June, 20},
	{"cancer", 3, "Cancer", "Câncer", ElementWater, time.June, 21, time.July, 22},
	{"leo", 4, "Leo", "Leão", ElementFire, time.July, 23, time.August, 22},
	{"virgo", 5, "Virgo", "Virgem", ElementEarth, time.August, 23, time.September, 22},
	{"libra", 6, "Libra", "Libra", ElementAir, time.September, 23, time.October, 22},
	{"scorpio", 7, "Scorpio", "Escorpião", ElementWater, time.October, 23, time.November, 21},
	{"sagittarius", 8, "Sagittarius", "Sagitário", ElementFire, time.November, 22, time.December, 21},
	{"capricorn", 9, "Capricorn", "Capricórnio", ElementEarth, time.December, 22, time.January, 19},
	{"aquarius", 10, "Aquarius", "Aquário", ElementAir, time.January, 20, time.February, 18},
	{"pisces", 11, "Pisces", "Peixes", ElementWater, time.February, 19, time.March, 20},
}

// Signs returns the table in ordinal order
func Signs() []Sign {
	out := make([]Sign, len(signs))
	copy(out, signs)
	return out
}

// SignByID is case-insensitive
func SignByID(id string) (Sign, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, s := range signs {
		if s.ID == id {
			return s, true
		}
	}
	return Sign{}, false
}

// SignForDate returns the sign whose range contains the date's month and day
func SignForDate(date time.Time) Sign {
	md := monthDay(date.Month(), date.Day())
	for _, s := range signs {
		start := monthDay(s.StartMonth, s.StartDay)
		end := monthDay(s.EndMonth, s.EndDay)
		if start <= end {
			if md >= start && md <= end {
				return s
			}
			continue
		}
		// range wraps the new year (Capricorn)
		if md >= start || md <= end {
			return s
		}
	}
	// unreachable: the table covers every day
	return signs[0]
}

// SignsByElement lists signs of one element in ordinal order
func SignsByElement(e Element) []Sign {
	var out []Sign
	for _, s := range signs {
		if s.Element == e {
			out = append(out, s)
		}
	}
	return out
}

func monthDay(m time.Month, d int) int {
	return int(m)*100 + d
}
