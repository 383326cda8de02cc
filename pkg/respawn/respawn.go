package respawn

import (
	"sync"
	"time"

	"github.com/calexi/crossfire/pkg/clock"
)

// Scheduler tracks at most one pending respawn per dead player.
// Firing does not mutate game state directly: the notify callback is
// expected to hand the player ID back to the game loop, which applies
// the respawn (and treats unknown or already-alive players as no-ops).
type Scheduler struct {
	clock  clock.Clock
	delay  time.Duration
	notify func(playerID string)

	lock    sync.Mutex
	pending map[string]clock.Timer
}

type NewSchedulerOptions struct {
	Clock clock.Clock
	Delay time.Duration
	// Notify is called once per fired timer with the player ID.
	Notify func(playerID string)
}

// NewScheduler creates a new respawn scheduler.
func NewScheduler(opts NewSchedulerOptions) *Scheduler {
	return &Scheduler{
		clock:   opts.Clock,
		delay:   opts.Delay,
		notify:  opts.Notify,
		pending: make(map[string]clock.Timer),
	}
}

// Schedule arms a respawn timer for the player. A player with a timer
// already pending keeps the original timer.
func (s *Scheduler) Schedule(playerID string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.pending[playerID]; ok {
		return
	}
	s.pending[playerID] = s.clock.AfterFunc(s.delay, func() {
		s.fire(playerID)
	})
}

// Cancel stops a pending respawn timer for the player.
// Returns false if no timer was pending.
func (s *Scheduler) Cancel(playerID string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	timer, ok := s.pending[playerID]
	if !ok {
		return false
	}
	delete(s.pending, playerID)
	return timer.Stop()
}

// Pending reports whether a respawn timer is armed for the player.
func (s *Scheduler) Pending(playerID string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, ok := s.pending[playerID]
	return ok
}

func (s *Scheduler) fire(playerID string) {
	s.lock.Lock()
	if _, ok := s.pending[playerID]; !ok {
		// cancelled between firing and acquiring the lock
		s.lock.Unlock()
		return
	}
	delete(s.pending, playerID)
	s.lock.Unlock()

	s.notify(playerID)
}
