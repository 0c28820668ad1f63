package ranked

// TierStyle carries the presentational color and icon for a tier.
// Clients decide how to render it; the engine only hands it through.
type TierStyle struct {
	Color string
	Icon  string
}

func TierStyleFor(t Tier) TierStyle {
	switch t {
	case TierBronze:
		return TierStyle{Color: "#cd7f32", Icon: "shield-bronze"}
	case TierSilver:
		return TierStyle{Color: "#c0c0c0", Icon: "shield-silver"}
	case TierGold:
		return TierStyle{Color: "#ffd700", Icon: "shield-gold"}
	case TierPlatinum:
		return TierStyle{Color: "#5fd3bc", Icon: "shield-platinum"}
	case TierDiamond:
		return TierStyle{Color: "#b9f2ff", Icon: "gem-diamond"}
	case TierEmerald:
		return TierStyle{Color: "#50c878", Icon: "gem-emerald"}
	case TierNightmare:
		return TierStyle{Color: "#8b0000", Icon: "skull"}
	}
	return TierStyle{Color: "#9ca3af", Icon: "unranked"}
}
