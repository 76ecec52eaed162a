package bot

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_AdvanceTakesMaximum(t *testing.T) {
	tracker := NewTracker(5)

	tracker.Advance(3)
	assert.Equal(t, uint64(5), tracker.Value())

	tracker.Advance(11)
	assert.Equal(t, uint64(11), tracker.Value())

	tracker.Advance(11)
	tracker.Advance(10)
	assert.Equal(t, uint64(11), tracker.Value())
}

func TestTracker_ConcurrentAdvanceNeverRegresses(t *testing.T) {
	tracker := NewTracker(0)
	ids := rand.Perm(1000)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			before := tracker.Value()
			tracker.Advance(uint64(id) + 1)
			assert.GreaterOrEqual(t, tracker.Value(), before)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, uint64(1000), tracker.Value())
}

func TestTracker_BatchBoundariesDoNotMatter(t *testing.T) {
	ids := []uint64{3, 4, 9, 10, 11, 20}

	whole := NewTracker(0)
	for _, id := range ids {
		whole.Advance(id + 1)
	}

	split := NewTracker(0)
	for _, part := range [][]uint64{ids[:2], ids[2:5], ids[5:]} {
		for _, id := range part {
			split.Advance(id + 1)
		}
	}

	assert.Equal(t, uint64(21), whole.Value())
	assert.Equal(t, whole.Value(), split.Value())
}
