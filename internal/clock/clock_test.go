package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_Advance(t *testing.T) {
	start := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	c := NewManual(start)

	c.Advance(90 * time.Second)

	assert.Equal(t, start.Add(90*time.Second), c.Now())
	assert.Equal(t, 90*time.Second, c.Since(start))
}

func TestDateKey_UsesUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	local := time.Date(2024, 3, 1, 21, 0, 0, 0, est)

	assert.Equal(t, "2024-03-02", DateKey(local))
}

func TestReal_Since(t *testing.T) {
	c := NewReal()
	start := c.Now()

	assert.GreaterOrEqual(t, c.Since(start), time.Duration(0))
}
