package respawn

import (
	"testing"
	"time"

	"github.com/calexi/crossfire/pkg/clock"
	"github.com/stretchr/testify/assert"
)

func newTestScheduler(delay time.Duration) (*Scheduler, *clock.FakeClock, *[]string) {
	fakeClock := clock.NewFake(time.Unix(1000, 0))
	var fired []string
	scheduler := NewScheduler(NewSchedulerOptions{
		Clock: fakeClock,
		Delay: delay,
		Notify: func(playerID string) {
			fired = append(fired, playerID)
		},
	})
	return scheduler, fakeClock, &fired
}

func TestScheduler_Schedule(t *testing.T) {
	scheduler, fakeClock, fired := newTestScheduler(3 * time.Second)

	scheduler.Schedule("alpha")
	assert.True(t, scheduler.Pending("alpha"))

	fakeClock.Advance(2 * time.Second)
	assert.Empty(t, *fired)

	fakeClock.Advance(time.Second)
	assert.Equal(t, []string{"alpha"}, *fired)
	assert.False(t, scheduler.Pending("alpha"))

	// firing is once per schedule
	fakeClock.Advance(10 * time.Second)
	assert.Equal(t, []string{"alpha"}, *fired)
}

func TestScheduler_ScheduleIsIdempotent(t *testing.T) {
	scheduler, fakeClock, fired := newTestScheduler(3 * time.Second)

	scheduler.Schedule("alpha")
	fakeClock.Advance(time.Second)
	// a second schedule keeps the original deadline
	scheduler.Schedule("alpha")

	fakeClock.Advance(2 * time.Second)
	assert.Equal(t, []string{"alpha"}, *fired)
}

func TestScheduler_Cancel(t *testing.T) {
	scheduler, fakeClock, fired := newTestScheduler(3 * time.Second)

	scheduler.Schedule("alpha")
	assert.True(t, scheduler.Cancel("alpha"))
	assert.False(t, scheduler.Pending("alpha"))

	fakeClock.Advance(10 * time.Second)
	assert.Empty(t, *fired)

	// cancelling without a pending timer reports false
	assert.False(t, scheduler.Cancel("alpha"))
	assert.False(t, scheduler.Cancel("ghost"))
}

func TestScheduler_IndependentPlayers(t *testing.T) {
	scheduler, fakeClock, fired := newTestScheduler(3 * time.Second)

	scheduler.Schedule("alpha")
	fakeClock.Advance(time.Second)
	scheduler.Schedule("bravo")
	scheduler.Cancel("alpha")

	fakeClock.Advance(3 * time.Second)
	assert.Equal(t, []string{"bravo"}, *fired)
}
