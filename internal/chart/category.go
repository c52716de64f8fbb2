package chart

import (
	"errors"
	"fmt"

	"github.com/showdownbot/chart-engine/internal/stats"
)

// Category is one outcome kind on a chart.
type Category string

const (
	PU  Category = "PU"
	SO  Category = "SO"
	GB  Category = "GB"
	FB  Category = "FB"
	BB  Category = "BB"
	B1  Category = "1B"
	B1P Category = "1B+"
	B2  Category = "2B"
	B3  Category = "3B"
	HR  Category = "HR"
)

// Fill is the direction a category claims slots in.
type Fill int

const (
	Ascending  Fill = iota // from slot 1 up
	Descending             // from the top slot down
)

var ErrUnsupportedCategory = errors.New("category not supported for player type")

// CategoryError carries the offending category and player type.
type CategoryError struct {
	Category  Category
	IsPitcher bool
}

func (e *CategoryError) Error() string {
	kind := "hitter"
	if e.IsPitcher {
		kind = "pitcher"
	}
	return fmt.Sprintf("%s: %s on a %s chart", ErrUnsupportedCategory, e.Category, kind)
}

func (e *CategoryError) Unwrap() error { return ErrUnsupportedCategory }

type categoryInfo struct {
	isOut      bool
	fill       Fill
	slotLimit  float64 // classic units
	hitterOnly bool
	statKey    string
}

// static attributes; rule sets only choose which categories appear and in what order
var categoryTable = map[Category]categoryInfo{
	PU:  {isOut: true, fill: Ascending, slotLimit: 20, statKey: stats.PU},
	SO:  {isOut: true, fill: Ascending, slotLimit: 20, statKey: stats.SO},
	GB:  {isOut: true, fill: Ascending, slotLimit: 20, statKey: stats.GB},
	FB:  {isOut: true, fill: Ascending, slotLimit: 20, statKey: stats.FB},
	BB:  {fill: Ascending, slotLimit: 12, statKey: stats.BB},
	B1:  {fill: Descending, slotLimit: 20, statKey: stats.B1},
	B1P: {fill: Descending, slotLimit: 20, hitterOnly: true, statKey: stats.B1P},
	B2:  {fill: Descending, slotLimit: 12, statKey: stats.B2},
	B3:  {fill: Descending, slotLimit: 20, hitterOnly: true, statKey: stats.B3},
	HR:  {fill: Descending, slotLimit: 10, statKey: stats.HR},
}

// fill priority; the remainder categories (FB, 1B) come last in their group
var (
	outFillOrder = []Category{SO, PU, GB, FB}
	hitFillOrder = []Category{HR, B3, B2}
)

// ParseCategory accepts the YAML spelling ("SO", "1B+", ...).
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryTable[c]; !ok {
		return "", fmt.Errorf("unknown chart category %q", s)
	}
	return c, nil
}

func (c Category) String() string { return string(c) }

func (c Category) IsOut() bool { return categoryTable[c].isOut }

func (c Category) Fill() Fill { return categoryTable[c].fill }

// SlotLimit is the most slot worth the category may hold. 1B+ is further
// bounded by the single total.
func (c Category) SlotLimit() float64 { return categoryTable[c].slotLimit }

// StatKey is the stats.Line key for the category's real rate.
func (c Category) StatKey() string { return categoryTable[c].statKey }

// IsValidFor reports whether the category can appear on the player type's chart.
func (c Category) IsValidFor(isPitcher bool) bool {
	info, ok := categoryTable[c]
	if !ok {
		return false
	}
	return !(isPitcher && info.hitterOnly)
}

// categoriesFor converts a rule set's display order into categories.
func categoriesFor(names []string, isPitcher bool) ([]Category, error) {
	out := make([]Category, 0, len(names))
	for _, n := range names {
		c, err := ParseCategory(n)
		if err != nil {
			return nil, err
		}
		if !c.IsValidFor(isPitcher) {
			return nil, &CategoryError{Category: c, IsPitcher: isPitcher}
		}
		out = append(out, c)
	}
	return out, nil
}
