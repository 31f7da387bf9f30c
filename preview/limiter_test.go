package preview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func newTestLimiter(fps int) (*FrameLimiter, *fakeClock) {
	c := &fakeClock{t: time.Unix(1000, 0)}
	l := NewFrameLimiter(fps)
	l.now, l.sleep = c.now, c.sleep
	return l, c
}

func TestFrameLimiterAllow(t *testing.T) {
	l, c := newTestLimiter(10)

	assert.True(t, l.Allow())
	assert.False(t, l.Allow())

	c.t = c.t.Add(50 * time.Millisecond)
	assert.False(t, l.Allow())
	c.t = c.t.Add(50 * time.Millisecond)
	assert.True(t, l.Allow())

	// A stall does not produce a burst afterwards.
	c.t = c.t.Add(time.Second)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestFrameLimiterWait(t *testing.T) {
	l, c := newTestLimiter(20)

	l.Wait()
	assert.Empty(t, c.slept)
	l.Wait()
	l.Wait()
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 50 * time.Millisecond}, c.slept)

	c.slept = nil
	c.t = c.t.Add(20 * time.Millisecond)
	l.Wait()
	assert.Equal(t, []time.Duration{30 * time.Millisecond}, c.slept)
}

func TestFrameLimiterUnlimited(t *testing.T) {
	l, c := newTestLimiter(0)
	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow())
		l.Wait()
	}
	assert.Empty(t, c.slept)
}
