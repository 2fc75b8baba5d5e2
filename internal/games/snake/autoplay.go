package snake

// autoplayGreed is the chance of steering toward food when possible.
const autoplayGreed = 0.8

// AutoplayDirection picks the next move for a computer-driven snake. It
// never reverses, prefers moves that close the distance to food on either
// axis, and otherwise wanders. It does not look for its own body or walls,
// so it can trap itself. The grid size is accepted for hosts that pass the
// whole state but the heuristic ignores boundaries.
func (e *Engine) AutoplayDirection(snake []Position, food Position, current Direction, _ int) Direction {
	candidates := make([]Direction, 0, 3)
	for _, d := range AllDirections {
		if d != current.Opposite() {
			candidates = append(candidates, d)
		}
	}

	var head Position
	if len(snake) > 0 {
		head = snake[0]
	}

	var wanted []Direction
	switch {
	case food.X > head.X:
		wanted = append(wanted, DirRight)
	case food.X < head.X:
		wanted = append(wanted, DirLeft)
	}
	switch {
	case food.Y > head.Y:
		wanted = append(wanted, DirDown)
	case food.Y < head.Y:
		wanted = append(wanted, DirUp)
	}

	preferred := wanted[:0:0]
	for _, d := range wanted {
		if d != current.Opposite() {
			preferred = append(preferred, d)
		}
	}

	if len(preferred) > 0 && e.rng.Float64() < autoplayGreed {
		return preferred[e.rng.Intn(len(preferred))]
	}
	return candidates[e.rng.Intn(len(candidates))]
}
