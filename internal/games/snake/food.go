package snake

// PlaceFood picks a uniformly random free cell of a gridSize×gridSize board.
// When the snake covers the whole board it returns (0,0).
func (e *Engine) PlaceFood(snake []Position, gridSize int) Position {
	taken := make(map[Position]struct{}, len(snake))
	for _, seg := range snake {
		taken[seg] = struct{}{}
	}

	var free []Position
	for x := 0; x < gridSize; x++ {
		for y := 0; y < gridSize; y++ {
			p := Position{X: x, Y: y}
			if _, ok := taken[p]; !ok {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		return Position{}
	}
	return free[e.rng.Intn(len(free))]
}
