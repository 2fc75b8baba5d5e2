package snake

import (
	"testing"
)

// scriptedRand replays queued values and falls back to zero.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func newTestEngine() *Engine {
	return NewEngine(&scriptedRand{})
}

func playing(s State) State {
	s.Status = StatusPlaying
	return s
}

func TestInitializeDefaults(t *testing.T) {
	e := newTestEngine()
	s := e.Initialize(Config{})

	if len(s.Snake) != 3 {
		t.Errorf("len(Snake) = %d, expected 3", len(s.Snake))
	}
	if s.Status != StatusIdle {
		t.Errorf("Status = %q, expected %q", s.Status, StatusIdle)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, expected 0", s.Score)
	}
	if s.Direction != DirRight || s.NextDirection != DirRight {
		t.Errorf("Direction = %v/%v, expected RIGHT/RIGHT", s.Direction, s.NextDirection)
	}
	if s.GridSize != 20 {
		t.Errorf("GridSize = %d, expected 20", s.GridSize)
	}
	if s.Speed != 150 {
		t.Errorf("Speed = %d, expected 150", s.Speed)
	}
	if s.Mode != ModeWalls {
		t.Errorf("Mode = %q, expected %q", s.Mode, ModeWalls)
	}

	expected := []Position{{10, 10}, {9, 10}, {8, 10}}
	for i, p := range expected {
		if s.Snake[i] != p {
			t.Errorf("Snake[%d] = %v, expected %v", i, s.Snake[i], p)
		}
	}
	if s.Occupies(s.Food) {
		t.Errorf("Food %v placed on snake", s.Food)
	}
}

func TestInitializeCustomConfig(t *testing.T) {
	s := newTestEngine().Initialize(Config{GridSize: 30, Mode: ModePassThrough})

	if s.GridSize != 30 {
		t.Errorf("GridSize = %d, expected 30", s.GridSize)
	}
	if s.Mode != ModePassThrough {
		t.Errorf("Mode = %q, expected %q", s.Mode, ModePassThrough)
	}
	if s.Head() != (Position{X: 15, Y: 15}) {
		t.Errorf("Head() = %v, expected (15,15)", s.Head())
	}
}

func TestInitializeNegativeGridPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Initialize with negative grid size should panic")
		}
	}()
	newTestEngine().Initialize(Config{GridSize: -1})
}

func TestIsOpposite(t *testing.T) {
	tests := []struct {
		a, b     Direction
		expected bool
	}{
		{DirUp, DirDown, true},
		{DirDown, DirUp, true},
		{DirLeft, DirRight, true},
		{DirRight, DirLeft, true},
		{DirUp, DirLeft, false},
		{DirUp, DirRight, false},
		{DirLeft, DirUp, false},
		{DirUp, DirUp, false},
	}

	for _, tc := range tests {
		if got := IsOpposite(tc.a, tc.b); got != tc.expected {
			t.Errorf("IsOpposite(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestAdvanceIdentityWhenNotPlaying(t *testing.T) {
	e := newTestEngine()
	base := e.Initialize(Config{})

	for _, status := range []Status{StatusIdle, StatusPaused, StatusGameOver} {
		s := base
		s.Status = status
		next := e.Advance(s)
		if next.Status != status {
			t.Errorf("%s: Status changed to %q", status, next.Status)
		}
		if next.Head() != s.Head() || len(next.Snake) != len(s.Snake) {
			t.Errorf("%s: snake moved", status)
		}
	}
}

func TestAdvanceMovesRight(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{}))
	s.Food = Position{X: 0, Y: 0}

	next := e.Advance(s)

	if next.Head() != (Position{X: s.Head().X + 1, Y: s.Head().Y}) {
		t.Errorf("Head() = %v, expected one cell right of %v", next.Head(), s.Head())
	}
	if len(next.Snake) != len(s.Snake) {
		t.Errorf("len(Snake) = %d, expected %d", len(next.Snake), len(s.Snake))
	}
	if next.Snake[len(next.Snake)-1] != s.Snake[len(s.Snake)-2] {
		t.Error("tail segment should be dropped on a normal move")
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{}))
	before := s.Clone()

	e.Advance(s)

	for i := range before.Snake {
		if s.Snake[i] != before.Snake[i] {
			t.Fatalf("input snake mutated at %d: %v vs %v", i, s.Snake[i], before.Snake[i])
		}
	}
}

func TestAdvanceWallCollision(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{GridSize: 20, Mode: ModeWalls}))
	s.Snake = []Position{{19, 10}, {18, 10}}
	s.Direction = DirRight
	s.NextDirection = DirRight

	next := e.Advance(s)

	if next.Status != StatusGameOver {
		t.Fatalf("Status = %q, expected %q", next.Status, StatusGameOver)
	}
	if next.Head() != (Position{19, 10}) || len(next.Snake) != 2 {
		t.Errorf("snake should be unchanged on wall collision, got %v", next.Snake)
	}
}

func TestAdvanceWrapsInPassThrough(t *testing.T) {
	tests := []struct {
		name     string
		snake    []Position
		dir      Direction
		expected Position
	}{
		{"right edge", []Position{{19, 10}, {18, 10}}, DirRight, Position{0, 10}},
		{"left edge", []Position{{0, 10}, {1, 10}}, DirLeft, Position{19, 10}},
		{"top edge", []Position{{5, 0}, {5, 1}}, DirUp, Position{5, 19}},
		{"bottom edge", []Position{{5, 19}, {5, 18}}, DirDown, Position{5, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine()
			s := playing(e.Initialize(Config{GridSize: 20, Mode: ModePassThrough}))
			s.Snake = tc.snake
			s.Food = Position{X: 10, Y: 3}
			s.Direction = tc.dir
			s.NextDirection = tc.dir

			next := e.Advance(s)
			if next.Status != StatusPlaying {
				t.Fatalf("Status = %q, expected playing", next.Status)
			}
			if next.Head() != tc.expected {
				t.Errorf("Head() = %v, expected %v", next.Head(), tc.expected)
			}
		})
	}
}

func TestAdvanceEatsFood(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{}))
	s.Snake = []Position{{5, 5}, {4, 5}}
	s.Food = Position{6, 5}
	s.Direction = DirRight
	s.NextDirection = DirRight

	next := e.Advance(s)

	if next.Score != 10 {
		t.Errorf("Score = %d, expected 10", next.Score)
	}
	if len(next.Snake) != 3 {
		t.Errorf("len(Snake) = %d, expected 3", len(next.Snake))
	}
	if next.Head() != (Position{6, 5}) {
		t.Errorf("Head() = %v, expected (6,5)", next.Head())
	}
	if next.Snake[2] != (Position{4, 5}) {
		t.Errorf("tail = %v, expected (4,5) to be kept", next.Snake[2])
	}
	if next.Speed != 148 {
		t.Errorf("Speed = %d, expected 148", next.Speed)
	}
	if next.Occupies(next.Food) {
		t.Errorf("new food %v placed on snake", next.Food)
	}
}

func TestAdvanceSpeedFloor(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{SpeedIncrement: 5}))
	s.Snake = []Position{{5, 5}, {4, 5}}
	s.Food = Position{6, 5}
	s.Speed = 52

	next := e.Advance(s)
	if next.Speed != MinSpeed {
		t.Errorf("Speed = %d, expected floor %d", next.Speed, MinSpeed)
	}
}

func TestAdvanceUsesStateIncrement(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{}))
	s.Snake = []Position{{5, 5}, {4, 5}}
	s.Food = Position{6, 5}
	s.SpeedIncrement = 0

	if next := e.Advance(s); next.Speed != s.Speed {
		t.Errorf("Speed = %d with zero increment, expected %d", next.Speed, s.Speed)
	}
}

func TestInitializeSpeedSettings(t *testing.T) {
	tests := []struct {
		name          string
		cfg           Config
		wantSpeed     int
		wantIncrement int
	}{
		{"defaults", Config{}, 150, 2},
		{"zero increment", Config{InitialSpeed: 120, SpeedIncrement: 0}, 120, 2},
		{"negative increment", Config{SpeedIncrement: -3}, 150, 2},
		{"below floor", Config{InitialSpeed: 30}, MinSpeed, 2},
		{"negative speed", Config{InitialSpeed: -10}, MinSpeed, 2},
		{"at floor", Config{InitialSpeed: MinSpeed, SpeedIncrement: 7}, MinSpeed, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestEngine().Initialize(tc.cfg)
			if s.Speed != tc.wantSpeed || s.InitialSpeed != tc.wantSpeed {
				t.Errorf("Speed/InitialSpeed = %d/%d, expected %d", s.Speed, s.InitialSpeed, tc.wantSpeed)
			}
			if s.SpeedIncrement != tc.wantIncrement {
				t.Errorf("SpeedIncrement = %d, expected %d", s.SpeedIncrement, tc.wantIncrement)
			}
		})
	}
}

func TestSpeedNeverIncreases(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{InitialSpeed: 30}))

	for i := range 5 {
		s.Snake = []Position{{5, 5}, {4, 5}}
		s.Direction = DirRight
		s.NextDirection = DirRight
		s.Food = Position{6, 5}
		next := e.Advance(s)
		if next.Speed > s.Speed {
			t.Fatalf("growth %d raised Speed from %d to %d", i, s.Speed, next.Speed)
		}
		s = next
	}
}

func TestAdvanceSelfCollision(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{}))
	s.Snake = []Position{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6}}
	s.Direction = DirDown
	s.NextDirection = DirDown

	next := e.Advance(s)

	if next.Status != StatusGameOver {
		t.Fatalf("Status = %q, expected %q", next.Status, StatusGameOver)
	}
	if len(next.Snake) != 5 || next.Head() != (Position{5, 5}) {
		t.Errorf("snake should be unchanged on self collision, got %v", next.Snake)
	}
}

func TestAdvanceTailChaseIsLegal(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{}))
	// A 2x2 loop: the head moves into the cell the tail is leaving.
	s.Snake = []Position{{5, 5}, {6, 5}, {6, 6}, {5, 6}}
	s.Direction = DirLeft
	s.NextDirection = DirDown
	s.Food = Position{0, 0}

	next := e.Advance(s)

	if next.Status != StatusPlaying {
		t.Fatalf("Status = %q, expected playing when chasing the tail", next.Status)
	}
	if next.Head() != (Position{5, 6}) {
		t.Errorf("Head() = %v, expected (5,6)", next.Head())
	}
}

func TestAdvanceTailChaseOnGrowthTick(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{}))
	s.Snake = []Position{{5, 5}, {6, 5}, {6, 6}, {5, 6}}
	s.Direction = DirLeft
	s.NextDirection = DirDown
	s.Food = Position{5, 6}

	next := e.Advance(s)

	if next.Status != StatusPlaying {
		t.Fatalf("Status = %q, tail cell is excluded even when growing", next.Status)
	}
	if len(next.Snake) != 5 {
		t.Errorf("len(Snake) = %d, expected 5", len(next.Snake))
	}
}

func TestAdvanceCommitsDirection(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{}))
	s.Food = Position{0, 0}
	s = RequestDirection(s, DirUp)

	if s.Direction != DirRight {
		t.Fatalf("Direction = %v before tick, expected RIGHT", s.Direction)
	}

	next := e.Advance(s)
	if next.Direction != DirUp {
		t.Errorf("Direction = %v after tick, expected UP", next.Direction)
	}
	if next.Head() != (Position{10, 9}) {
		t.Errorf("Head() = %v, expected (10,9)", next.Head())
	}
}

func TestRequestDirection(t *testing.T) {
	e := newTestEngine()
	base := playing(e.Initialize(Config{}))

	if got := RequestDirection(base, DirUp); got.NextDirection != DirUp {
		t.Errorf("NextDirection = %v, expected UP", got.NextDirection)
	}
	if got := RequestDirection(base, DirLeft); got.NextDirection != DirRight {
		t.Errorf("reversal accepted: NextDirection = %v", got.NextDirection)
	}
	if got := RequestDirection(base, DirRight); got.NextDirection != DirRight {
		t.Errorf("same direction rejected: NextDirection = %v", got.NextDirection)
	}

	idle := e.Initialize(Config{})
	if got := RequestDirection(idle, DirUp); got.NextDirection != DirRight {
		t.Errorf("input accepted while idle: NextDirection = %v", got.NextDirection)
	}
}

func TestRequestDirectionChecksCommittedDirection(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{}))

	// UP is queued, but LEFT still reverses the committed RIGHT.
	s = RequestDirection(s, DirUp)
	s = RequestDirection(s, DirLeft)

	if s.NextDirection != DirUp {
		t.Errorf("NextDirection = %v, expected UP", s.NextDirection)
	}
}

func TestStartFromIdleAndGameOver(t *testing.T) {
	e := newTestEngine()

	idle := e.Initialize(Config{Mode: ModePassThrough, GridSize: 16})
	started := e.Start(idle)
	if started.Status != StatusPlaying {
		t.Errorf("Status = %q, expected playing", started.Status)
	}

	over := started
	over.Status = StatusGameOver
	over.Score = 100
	over.Speed = 90
	restarted := e.Start(over)

	if restarted.Status != StatusPlaying {
		t.Errorf("Status = %q, expected playing", restarted.Status)
	}
	if restarted.Score != 0 {
		t.Errorf("Score = %d, expected reset to 0", restarted.Score)
	}
	if restarted.Speed != 150 {
		t.Errorf("Speed = %d, expected reset to 150", restarted.Speed)
	}
	if restarted.Mode != ModePassThrough || restarted.GridSize != 16 {
		t.Errorf("mode/grid not preserved: %q %d", restarted.Mode, restarted.GridSize)
	}
	if len(restarted.Snake) != 3 {
		t.Errorf("len(Snake) = %d, expected 3", len(restarted.Snake))
	}
}

func TestStartWhilePausedOrPlaying(t *testing.T) {
	e := newTestEngine()
	s := playing(e.Initialize(Config{}))
	s.Score = 40
	s.Snake = []Position{{3, 3}, {2, 3}, {1, 3}, {0, 3}}

	for _, status := range []Status{StatusPaused, StatusPlaying} {
		in := s
		in.Status = status
		out := e.Start(in)
		if out.Status != StatusPlaying {
			t.Errorf("%s: Status = %q, expected playing", status, out.Status)
		}
		if out.Score != 40 || len(out.Snake) != 4 {
			t.Errorf("%s: progress was reset", status)
		}
	}
}

func TestStartKeepsConfiguredSpeed(t *testing.T) {
	e := newTestEngine()
	s := e.Start(e.Initialize(Config{InitialSpeed: 90, SpeedIncrement: 4}))
	if s.Speed != 90 || s.SpeedIncrement != 4 {
		t.Errorf("Speed/SpeedIncrement = %d/%d, expected 90/4", s.Speed, s.SpeedIncrement)
	}

	s.Speed = 80
	s.Status = StatusPaused
	if got := e.Start(s); got.Speed != 80 {
		t.Errorf("resume changed speed to %d", got.Speed)
	}

	s.Status = StatusGameOver
	if got := e.Start(s); got.Speed != 90 {
		t.Errorf("restart Speed = %d, expected configured 90", got.Speed)
	}
}

func TestPauseResumeToggle(t *testing.T) {
	e := newTestEngine()
	idle := e.Initialize(Config{})
	play := playing(idle)
	paused := play
	paused.Status = StatusPaused

	tests := []struct {
		name     string
		fn       func(State) State
		in       State
		expected Status
	}{
		{"pause playing", Pause, play, StatusPaused},
		{"pause idle", Pause, idle, StatusIdle},
		{"resume paused", Resume, paused, StatusPlaying},
		{"resume playing", Resume, play, StatusPlaying},
		{"resume idle", Resume, idle, StatusIdle},
		{"toggle playing", TogglePause, play, StatusPaused},
		{"toggle paused", TogglePause, paused, StatusPlaying},
		{"toggle idle", TogglePause, idle, StatusIdle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in).Status; got != tc.expected {
				t.Errorf("Status = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestSetMode(t *testing.T) {
	e := newTestEngine()
	s := e.Initialize(Config{})

	if got := SetMode(s, ModePassThrough); got.Mode != ModePassThrough {
		t.Errorf("Mode = %q, expected pass-through", got.Mode)
	}

	pt := e.Initialize(Config{Mode: ModePassThrough})
	if got := SetMode(pt, ModeWalls); got.Mode != ModeWalls {
		t.Errorf("Mode = %q, expected walls", got.Mode)
	}

	// No status guard: the host decides when this is allowed.
	if got := SetMode(playing(s), ModePassThrough); got.Mode != ModePassThrough {
		t.Errorf("Mode = %q while playing, expected pass-through", got.Mode)
	}
}

func TestTickInterval(t *testing.T) {
	s := State{Speed: 120}
	if got := TickInterval(s); got.Milliseconds() != 120 {
		t.Errorf("TickInterval() = %v, expected 120ms", got)
	}
	if got := TickInterval(State{}); got.Milliseconds() != 150 {
		t.Errorf("TickInterval() of zero speed = %v, expected 150ms", got)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() State {
		e := NewSeededEngine(12345)
		s := e.Start(e.Initialize(Config{Mode: ModePassThrough}))
		for range 200 {
			s = RequestDirection(s, e.AutoplayDirection(s.Snake, s.Food, s.Direction, s.GridSize))
			s = e.Advance(s)
		}
		return s
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Head() != b.Head() || a.Food != b.Food || a.Status != b.Status {
		t.Errorf("same seed diverged: %+v vs %+v", a.Head(), b.Head())
	}
}
