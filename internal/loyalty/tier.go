package loyalty

// TierInfo describes the loyalty band a point total falls into. Max is nil for
// the open-ended top band.
type TierInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Min   int    `json:"min"`
	Max   *int   `json:"max,omitempty"`
}

var (
	tierNoviceMax     = 100
	tierCultivatorMax = 500
)

// Tier maps a point total onto its loyalty band.
func Tier(points int) TierInfo {
	switch {
	case points <= tierNoviceMax:
		return TierInfo{Label: "Novice", Icon: "🌱", Min: 0, Max: &tierNoviceMax}
	case points <= tierCultivatorMax:
		return TierInfo{Label: "Engaged Cultivator", Icon: "🌿", Min: tierNoviceMax + 1, Max: &tierCultivatorMax}
	default:
		return TierInfo{Label: "Forest Master", Icon: "🌳", Min: tierCultivatorMax + 1}
	}
}
