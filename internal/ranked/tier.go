package ranked

import "fmt"

// Tier is one of the seven named bands partitioning the RP ladder.
type Tier int

const (
	TierBronze Tier = iota + 1
	TierSilver
	TierGold
	TierPlatinum
	TierDiamond
	TierEmerald
	TierNightmare
)

func (t Tier) String() string {
	switch t {
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	case TierPlatinum:
		return "Platinum"
	case TierDiamond:
		return "Diamond"
	case TierEmerald:
		return "Emerald"
	case TierNightmare:
		return "Nightmare"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// TierDefinition is one band of the ladder. MaxRP is inclusive; the top
// tier is open ended.
type TierDefinition struct {
	Tier   Tier
	MinRP  int
	MaxRP  int
	Levels int
}

const (
	// maxRPUnbounded marks the open-ended top tier.
	maxRPUnbounded = -1

	// levelSpanRP is the RP width of one level inside a multi-level tier.
	levelSpanRP = 100
)

var tierTable = [...]TierDefinition{
	{Tier: TierBronze, MinRP: 0, MaxRP: 399, Levels: 4},
	{Tier: TierSilver, MinRP: 400, MaxRP: 799, Levels: 4},
	{Tier: TierGold, MinRP: 800, MaxRP: 1199, Levels: 4},
	{Tier: TierPlatinum, MinRP: 1200, MaxRP: 1599, Levels: 4},
	{Tier: TierDiamond, MinRP: 1600, MaxRP: 1899, Levels: 3},
	{Tier: TierEmerald, MinRP: 1900, MaxRP: 1999, Levels: 1},
	{Tier: TierNightmare, MinRP: 2000, MaxRP: maxRPUnbounded, Levels: 1},
}

// The ladder math assumes the table is ascending, contiguous and
// non-overlapping. Verified once here instead of on every lookup.
func init() {
	if tierTable[0].MinRP != 0 {
		panic("ranked: tier table must start at 0 RP")
	}
	prev := tierTable[0]
	for _, def := range tierTable[1:] {
		if def.Levels < 1 {
			panic(fmt.Sprintf("ranked: tier %s has no levels", def.Tier))
		}
		if prev.MaxRP == maxRPUnbounded {
			panic("ranked: only the top tier may be unbounded")
		}
		if def.MinRP != prev.MaxRP+1 {
			panic(fmt.Sprintf("ranked: tier table gap between %s and %s", prev.Tier, def.Tier))
		}
		prev = def
	}
	if tierTable[len(tierTable)-1].MaxRP != maxRPUnbounded {
		panic("ranked: top tier must be unbounded")
	}
}

// Division identifies a single rung of the ladder. Level is 1-based
// inside multi-level tiers and 0 for Emerald and Nightmare, which have
// no numbered sub-levels.
type Division struct {
	Tier  Tier
	Level int
}

func (d Division) String() string {
	def, ok := definitionOf(d.Tier)
	if !ok || def.Levels == 1 {
		return d.Tier.String()
	}
	return fmt.Sprintf("%s %d", d.Tier, d.Level)
}

// CalculatedRank is the full ladder placement derived from a total RP
// value. TierIndex orders every division strictly, so two ranks compare
// with a single int comparison.
type CalculatedRank struct {
	Tier      Tier
	Level     int
	DisplayRP int
	TotalRP   int
	TierIndex int
}

func (r CalculatedRank) Division() Division {
	return Division{Tier: r.Tier, Level: r.Level}
}

func (r CalculatedRank) DisplayName() string {
	return r.Division().String()
}

func tierIndex(t Tier, level int) int {
	return int(t)*1000 + level
}

func definitionOf(t Tier) (TierDefinition, bool) {
	for _, def := range tierTable {
		if def.Tier == t {
			return def, true
		}
	}
	return TierDefinition{}, false
}

func lookupTier(totalRP int) (TierDefinition, bool) {
	for _, def := range tierTable {
		if totalRP >= def.MinRP && (def.MaxRP == maxRPUnbounded || totalRP <= def.MaxRP) {
			return def, true
		}
	}
	return TierDefinition{}, false
}

func rankWithin(def TierDefinition, totalRP int) CalculatedRank {
	if def.Levels == 1 {
		// Single-level tiers keep counting past 99; Nightmare is
		// unbounded so its display RP is too.
		return CalculatedRank{
			Tier:      def.Tier,
			Level:     0,
			DisplayRP: totalRP - def.MinRP,
			TotalRP:   totalRP,
			TierIndex: tierIndex(def.Tier, 0),
		}
	}
	level := (totalRP-def.MinRP)/levelSpanRP + 1
	if level < 1 {
		level = 1
	}
	if level > def.Levels {
		level = def.Levels
	}
	display := totalRP - def.MinRP - (level-1)*levelSpanRP
	if display < 0 {
		display = 0
	}
	if display > levelSpanRP-1 {
		display = levelSpanRP - 1
	}
	return CalculatedRank{
		Tier:      def.Tier,
		Level:     level,
		DisplayRP: display,
		TotalRP:   totalRP,
		TierIndex: tierIndex(def.Tier, level),
	}
}

// NextDivision returns the rung directly above d. ok is false at the
// top of the ladder.
func NextDivision(d Division) (Division, bool) {
	def, ok := definitionOf(d.Tier)
	if !ok {
		return Division{}, false
	}
	if def.Levels > 1 && d.Level < def.Levels {
		return Division{Tier: d.Tier, Level: d.Level + 1}, true
	}
	for i, t := range tierTable {
		if t.Tier != d.Tier {
			continue
		}
		if i == len(tierTable)-1 {
			return Division{}, false
		}
		next := tierTable[i+1]
		level := 1
		if next.Levels == 1 {
			level = 0
		}
		return Division{Tier: next.Tier, Level: level}, true
	}
	return Division{}, false
}

// RPToNext reports the RP still needed to reach the next division, 0 at
// the top of the ladder.
func RPToNext(r CalculatedRank) int {
	next, ok := NextDivision(r.Division())
	if !ok {
		return 0
	}
	if next.Tier == r.Tier {
		return levelSpanRP - r.DisplayRP
	}
	def, _ := definitionOf(next.Tier)
	return def.MinRP - r.TotalRP
}

func IsPromotion(from, to CalculatedRank) bool {
	return to.TierIndex > from.TierIndex
}

func IsDemotion(from, to CalculatedRank) bool {
	return to.TierIndex < from.TierIndex
}

// Divisions lists every rung of the ladder in ascending order.
func Divisions() []Division {
	out := make([]Division, 0, 21)
	for _, def := range tierTable {
		if def.Levels == 1 {
			out = append(out, Division{Tier: def.Tier, Level: 0})
			continue
		}
		for lvl := 1; lvl <= def.Levels; lvl++ {
			out = append(out, Division{Tier: def.Tier, Level: lvl})
		}
	}
	return out
}
