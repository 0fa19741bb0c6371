package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerFiresOnceAfterQuietPeriod(t *testing.T) {
	start := time.Unix(0, 0)
	d := NewDebouncer(500 * time.Millisecond)

	// N triggers inside the window collapse to one deadline, 500ms after
	// the last trigger.
	d.Trigger(start)
	d.Trigger(start.Add(100 * time.Millisecond))
	d.Trigger(start.Add(200 * time.Millisecond))

	assert.False(t, d.Fire(start.Add(699*time.Millisecond)), "fired before the quiet period elapsed")
	assert.True(t, d.Fire(start.Add(700*time.Millisecond)))
	assert.False(t, d.Fire(start.Add(time.Hour)), "fired twice for one trigger burst")
}

func TestDebouncerRearms(t *testing.T) {
	start := time.Unix(0, 0)
	d := NewDebouncer(500 * time.Millisecond)

	d.Trigger(start)
	assert.True(t, d.Fire(start.Add(500*time.Millisecond)))

	d.Trigger(start.Add(time.Second))
	assert.True(t, d.Armed())
	assert.True(t, d.Fire(start.Add(1500*time.Millisecond)))
}

func TestDebouncerCancel(t *testing.T) {
	start := time.Unix(0, 0)
	d := NewDebouncer(500 * time.Millisecond)

	d.Trigger(start)
	d.Cancel()
	assert.False(t, d.Armed())
	assert.False(t, d.Fire(start.Add(time.Hour)))
}

func TestDebouncerUnarmedNeverFires(t *testing.T) {
	d := NewDebouncer(500 * time.Millisecond)
	assert.False(t, d.Fire(time.Now()))
}
