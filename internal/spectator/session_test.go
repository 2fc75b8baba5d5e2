package spectator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("watcher", 2)

	s.Send(ClosedEvent{GameID: "1"})
	s.Send(ClosedEvent{GameID: "2"})
	s.Send(ClosedEvent{GameID: "3"})

	require.Len(t, s.Events(), 2)
	assert.Equal(t, ClosedEvent{GameID: "2"}, <-s.Events())
	assert.Equal(t, ClosedEvent{GameID: "3"}, <-s.Events())
}

func TestChannelSessionClose(t *testing.T) {
	s := NewChannelSession("watcher", 4)
	s.Close()
	s.Close()

	select {
	case <-s.Done():
	default:
		t.Fatal("Done() should be closed")
	}

	s.Send(ClosedEvent{GameID: "late"})
	assert.Empty(t, s.Events(), "closed session should not queue events")
}

func TestChannelSessionDefaultBuffer(t *testing.T) {
	s := NewChannelSession("watcher", 0)
	assert.Equal(t, 16, cap(s.events))
	assert.Equal(t, SessionID("watcher"), s.ID())
}

func TestWatchersForgetClosedSessions(t *testing.T) {
	w := newWatchers()
	live := NewChannelSession("live", 4)
	gone := NewChannelSession("gone", 4)
	w.add(live)
	w.add(gone)
	require.Equal(t, 2, w.count())

	gone.Close()
	w.broadcast(ClosedEvent{GameID: "x"})

	assert.Equal(t, 1, w.count())
	assert.Len(t, live.Events(), 1)

	w.closeAll(ClosedEvent{GameID: "x"})
	assert.Equal(t, 0, w.count())
	assert.Len(t, live.Events(), 2)
}
