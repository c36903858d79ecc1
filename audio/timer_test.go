// =================================================================================
//
//			fox-ambience - https://www.foxhollow.cc/projects/fox-ambience/
//
//		 Fox Ambience is a terminal relaxation player that mixes tones, colored
//	  noise and looping soundscapes across independent mixer channels
//
//		 Copyright (c) 2025 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package audio

import (
	"testing"

	"fox-ambience/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerCountdownExpires(t *testing.T) {
	expired := 0
	timer := NewSleepTimer(func() { expired++ })

	require.NoError(t, timer.SetPreset(300))
	timer.Start()

	status := timer.Status()
	assert.Equal(t, model.TimerCountingDown, status.State)
	assert.Equal(t, 300, status.Seconds)

	for i := 0; i < 299; i++ {
		timer.Tick()
	}

	status = timer.Status()
	assert.Equal(t, model.TimerCountingDown, status.State)
	assert.Equal(t, 1, status.Seconds)
	assert.Equal(t, 0, expired)

	timer.Tick()

	status = timer.Status()
	assert.Equal(t, model.TimerIdle, status.State)
	assert.Equal(t, 0, status.Seconds)
	assert.Equal(t, 1, expired)

	// ticking while idle changes nothing
	timer.Tick()
	assert.Equal(t, 1, expired)
	assert.Equal(t, model.TimerIdle, timer.Status().State)
}

func TestTimerCountsUpWithoutPreset(t *testing.T) {
	timer := NewSleepTimer(nil)

	timer.Start()

	status := timer.Status()
	assert.Equal(t, model.TimerCountingUp, status.State)
	assert.Equal(t, 0, status.Seconds)

	for i := 0; i < 4000; i++ {
		timer.Tick()
	}

	status = timer.Status()
	assert.Equal(t, model.TimerCountingUp, status.State)
	assert.Equal(t, 4000, status.Seconds)

	timer.End()

	status = timer.Status()
	assert.Equal(t, model.TimerIdle, status.State)
	assert.Equal(t, 0, status.Seconds)
}

func TestTimerExplicitStopResetsToPreset(t *testing.T) {
	timer := NewSleepTimer(nil)

	require.NoError(t, timer.SetPreset(600))
	timer.Start()

	timer.Tick()
	timer.Tick()
	assert.Equal(t, 598, timer.Status().Seconds)

	timer.End()

	status := timer.Status()
	assert.Equal(t, model.TimerIdle, status.State)
	assert.Equal(t, 600, status.Seconds)
}

func TestTimerPresetImmutableWhileCounting(t *testing.T) {
	timer := NewSleepTimer(nil)

	require.NoError(t, timer.SetPreset(300))
	timer.Start()

	assert.Error(t, timer.SetPreset(600))
	assert.Equal(t, 300, timer.Status().Preset)

	// cycling is also locked out mid-session
	assert.Equal(t, 300, timer.CyclePreset())

	timer.End()

	require.NoError(t, timer.SetPreset(600))
	assert.Equal(t, 600, timer.Status().Preset)
	assert.Equal(t, 600, timer.Status().Seconds)
}

func TestTimerStartIsIdempotentWhileCounting(t *testing.T) {
	timer := NewSleepTimer(nil)

	require.NoError(t, timer.SetPreset(300))
	timer.Start()
	timer.Tick()

	// a second start must not restart the countdown
	timer.Start()
	assert.Equal(t, 299, timer.Status().Seconds)
}

func TestTimerCyclePresetWalksTheList(t *testing.T) {
	timer := NewSleepTimer(nil)

	seen := make([]int, 0, len(TimerPresets))
	for range TimerPresets {
		seen = append(seen, timer.CyclePreset())
	}

	// one full cycle lands back on the first entry
	assert.Equal(t, TimerPresets[0], seen[len(seen)-1])
	assert.Equal(t, TimerPresets[1:], seen[:len(seen)-1])
}

func TestTimerRejectsNegativePreset(t *testing.T) {
	timer := NewSleepTimer(nil)

	assert.Error(t, timer.SetPreset(-1))
}
