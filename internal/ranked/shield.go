package ranked

import "bedwars-tracker/internal/domain"

const (
	// ShieldMaxGames is the conventional number of losses a shield
	// absorbs before a demotion goes through.
	ShieldMaxGames = 3

	shieldWarningAt = 2
)

// ShieldState reports the demotion-shield grace mechanic. While the
// shield is absorbing losses the displayed RP stays frozen at the level
// floor even though the skill estimate keeps falling; callers surface
// both so the divergence is visible.
type ShieldState struct {
	Active    bool
	GamesUsed int
	Warning   bool
}

// ComputeShieldState derives shield usage from the match sample.
// currentRP is the intra-level display RP; the shield only engages at
// the level floor. explicitGamesUsed overrides the derived count when
// the upstream source reports one.
func (e *Engine) ComputeShieldState(currentRP int, history []domain.MatchRecord, explicitGamesUsed *int) ShieldState {
	used := 0
	if explicitGamesUsed != nil {
		used = *explicitGamesUsed
	} else {
		for _, m := range history {
			if m.Outcome == domain.OutcomeLoss && (m.RPChange == 0 || m.Shielded) {
				used++
			}
		}
	}
	return ShieldState{
		Active:    currentRP == 0 && used > 0,
		GamesUsed: used,
		Warning:   used >= shieldWarningAt,
	}
}
