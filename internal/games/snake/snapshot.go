package snake

// Snapshot is a compact view of a game, used for determinism checks and
// spectator listings.
type Snapshot struct {
	Tick      uint64    `json:"tick"`
	Status    Status    `json:"status"`
	Mode      Mode      `json:"mode"`
	Score     int       `json:"score"`
	Speed     int       `json:"speed"`
	Length    int       `json:"length"`
	Head      Position  `json:"head"`
	Food      Position  `json:"food"`
	Direction Direction `json:"direction"`
}

// SnapshotOf summarizes s after tick moves.
func SnapshotOf(s State, tick uint64) Snapshot {
	return Snapshot{
		Tick:      tick,
		Status:    s.Status,
		Mode:      s.Mode,
		Score:     s.Score,
		Speed:     s.Speed,
		Length:    len(s.Snake),
		Head:      s.Head(),
		Food:      s.Food,
		Direction: s.Direction,
	}
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return SnapshotOf(g.state, g.ticks)
}
