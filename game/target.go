package game

// Target is what a vote points at: either a player or the skip option.
// The zero value is not valid; build one with PlayerTarget or
// SkipTarget. Being a small comparable struct it doubles as a map key
// in tallies.
type Target struct {
	PlayerID string
	Skip     bool
}

func PlayerTarget(id string) Target {
	return Target{PlayerID: id}
}

func SkipTarget() Target {
	return Target{Skip: true}
}

func (t Target) IsSkip() bool {
	return t.Skip
}

func (t Target) String() string {
	if t.Skip {
		return "skip"
	}
	return t.PlayerID
}
