package rules

// KillReport is the outcome of one lethal collision in a tick. It is either a
// SingleKill or a MutualKill.
type KillReport interface {
	killReport()
}

// SingleKill is a head that ran into a body. KillerID equals VictimID for a
// suicide.
type SingleKill struct {
	KillerID string
	VictimID string
}

// IsSuicide reports whether the victim ran into its own body.
func (k SingleKill) IsSuicide() bool {
	return k.KillerID == k.VictimID
}

// MutualKill is two or more heads that landed on the same cell. There is no
// killer.
type MutualKill struct {
	VictimIDs []string
}

func (SingleKill) killReport() {}
func (MutualKill) killReport() {}
