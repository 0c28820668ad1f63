package domain

import "time"

// Outcome is the result of a ranked match from the tracked player's
// point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWin, OutcomeLoss, OutcomeDraw:
		return true
	}
	return false
}

type Player struct {
	UserID           string
	Username         string
	DisplayName      string
	RP               int
	ShieldGames      int
	SeasonID         string
	NewSeason        bool
	PrevSeasonRating *float64
	LastFetchAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MatchRecord is a single entry of a player's ranked history. Slices of
// MatchRecord are always ordered oldest first; the rating replay walks
// them in that order.
type MatchRecord struct {
	ID       string
	Outcome  Outcome
	RPChange int
	Shielded bool
}

type RankedMatch struct {
	ID        string
	UserID    string
	SeasonID  string
	Outcome   Outcome
	RPChange  int
	Shielded  bool
	RPAfter   int
	PlayedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Record strips a stored match down to the fields the rating engine
// consumes.
func (m RankedMatch) Record() MatchRecord {
	return MatchRecord{
		ID:       m.ID,
		Outcome:  m.Outcome,
		RPChange: m.RPChange,
		Shielded: m.Shielded,
	}
}

func MatchRecords(matches []RankedMatch) []MatchRecord {
	records := make([]MatchRecord, len(matches))
	for i, m := range matches {
		records[i] = m.Record()
	}
	return records
}
