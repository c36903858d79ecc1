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
	"fmt"
	"sync"

	"fox-ambience/model"
)

// TimerPresets are the countdown durations the player view cycles through, in
// seconds. Zero means no countdown, playback counts elapsed time upward.
var TimerPresets = []int{0, 300, 600, 900, 1800, 3600}

// SleepTimer tracks session time for the single sound player. A preset
// duration counts down and stops playback at zero, no preset counts up
// indefinitely. The timer has no tick source of its own, the app drives it
// through Tick once per second so exactly one clock exists.
type SleepTimer struct {
	lock sync.Mutex

	state   model.TimerState
	preset  int
	seconds int

	onExpire func()
}

// NewSleepTimer creates an idle timer. onExpire runs outside the timer lock
// when a countdown reaches zero, it should stop playback and nothing else, the
// timer has already returned itself to idle.
func NewSleepTimer(onExpire func()) *SleepTimer {
	return &SleepTimer{
		onExpire: onExpire,
	}
}

// Start begins counting when playback starts. With a preset the timer counts
// down from it, without one it counts up from zero.
func (t *SleepTimer) Start() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.state != model.TimerIdle {
		return
	}

	if t.preset > 0 {
		t.state = model.TimerCountingDown
		t.seconds = t.preset
	} else {
		t.state = model.TimerCountingUp
		t.seconds = 0
	}
}

// End stops counting and resets the display to the selected preset. Safe to
// call when already idle.
func (t *SleepTimer) End() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.state = model.TimerIdle
	t.seconds = t.preset
}

// Tick advances the timer by one second. When a countdown hits zero the timer
// resets itself to idle and then fires onExpire with the lock released.
func (t *SleepTimer) Tick() {
	t.lock.Lock()

	var expired bool

	switch t.state {
	case model.TimerCountingDown:
		t.seconds--

		// an elapsed countdown shows zero until the next start or preset
		// change, only an explicit stop resets the display to the preset
		if t.seconds <= 0 {
			t.state = model.TimerIdle
			t.seconds = 0
			expired = true
		}

	case model.TimerCountingUp:
		t.seconds++
	}

	t.lock.Unlock()

	if expired && t.onExpire != nil {
		t.onExpire()
	}
}

// CyclePreset advances to the next preset duration. The selector is locked
// while the timer is counting, mid-session changes are ignored.
func (t *SleepTimer) CyclePreset() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.state != model.TimerIdle {
		return t.preset
	}

	next := 0
	for i, preset := range TimerPresets {
		if preset == t.preset {
			next = (i + 1) % len(TimerPresets)
			break
		}
	}

	t.preset = TimerPresets[next]
	t.seconds = t.preset

	return t.preset
}

// SetPreset sets an explicit countdown duration in seconds, zero clears it.
func (t *SleepTimer) SetPreset(seconds int) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.state != model.TimerIdle {
		return fmt.Errorf("timer duration cannot change while counting")
	}

	if seconds < 0 {
		return fmt.Errorf("timer duration cannot be negative")
	}

	t.preset = seconds
	t.seconds = seconds

	return nil
}

func (t *SleepTimer) Status() model.TimerStatus {
	t.lock.Lock()
	defer t.lock.Unlock()

	return model.TimerStatus{
		State:   t.state,
		Preset:  t.preset,
		Seconds: t.seconds,
	}
}
