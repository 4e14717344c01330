package application

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateCache_EmptyUntilFirstSet(t *testing.T) {
	cache := NewStateCache()
	assert.Nil(t, cache.Get())
}

func TestStateCache_WholeRecordSwap(t *testing.T) {
	cache := NewStateCache()

	cache.Set(DeviceState{LedState: LedStateOn, ManualMode: true, ToggleCount: 1})
	cache.Set(DeviceState{LedState: LedStateOff, ToggleCount: 2})

	state := cache.Get()
	require.NotNil(t, state)
	assert.Equal(t, LedStateOff, state.LedState)
	// the previous record's fields do not bleed into the new one
	assert.Equal(t, false, state.ManualMode)
	assert.Equal(t, uint64(2), state.ToggleCount)
}

func TestStateCache_ConcurrentReadersSeeConsistentRecords(t *testing.T) {
	cache := NewStateCache()

	// every record is internally consistent: ToggleCount matches the state
	states := []DeviceState{
		{LedState: LedStateOn, ToggleCount: 1, IP: "10.0.0.1"},
		{LedState: LedStateOff, ToggleCount: 2, IP: "10.0.0.2"},
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			cache.Set(states[i%2])
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			state := cache.Get()
			if state == nil {
				continue
			}
			if state.LedState == LedStateOn {
				assert.Equal(t, uint64(1), state.ToggleCount)
				assert.Equal(t, "10.0.0.1", state.IP)
			} else {
				assert.Equal(t, uint64(2), state.ToggleCount)
				assert.Equal(t, "10.0.0.2", state.IP)
			}
		}
	}()

	wg.Wait()
}
