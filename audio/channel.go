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
	"math"

	"fox-ambience/model"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// channel owns the playback state for one mixer slot. All fields are guarded
// by the engine mutex, the render loop reads them under RLock and mutates only
// gain and the meter fields, which nothing else writes.
type channel struct {
	index      int
	definition model.SoundDefinition
	source     Source

	// generation increments on every state change that invalidates async
	// work started earlier, a loader that notices a stale generation must
	// abandon its result
	generation uint64

	playing bool
	loading bool

	volumeDb float64
	muted    bool

	// smoothed linear gain, driven towards targetGain by the render loop
	gain       float64
	targetGain float64

	levelInstant float32
	levelPeak    float32
}

func newChannel(index int, defaultVolumeDb float64) *channel {
	return &channel{
		index:    index,
		volumeDb: defaultVolumeDb,
	}
}

// refreshTargetGain recomputes the linear gain target from the current volume
// and mute state. Must be called with the engine lock held.
func (c *channel) refreshTargetGain() {
	if !c.playing || c.muted {
		c.targetGain = 0.0
		return
	}

	c.targetGain = core.DBToLinear(c.volumeDb)
}

// detachSource closes and removes the current source and bumps the generation
// so any in flight loader abandons its work. Must be called with the engine
// lock held, the render loop cannot be mid block while we hold it.
func (c *channel) detachSource() {
	if c.source != nil {
		c.source.Close()
		c.source = nil
	}

	c.playing = false
	c.loading = false
	c.generation++
	c.refreshTargetGain()
	c.levelInstant = 0
	c.levelPeak = 0
}

func (c *channel) snapshot() model.ChannelStatus {
	status := model.ChannelStatus{
		Index:    c.index,
		Label:    c.definition.Label,
		Playing:  c.playing,
		Loading:  c.loading,
		Muted:    c.muted,
		VolumeDb: c.volumeDb,
	}

	if c.source != nil {
		status.Detail = c.source.Describe()
	} else if c.definition.Label != "" {
		status.Detail = c.definition.Detail()
		status.Pending = true
	}

	return status
}

func (c *channel) signalLevel() model.SignalLevel {
	return model.SignalLevel{
		Instant: levelToDb(c.levelInstant),
		Peak:    levelToDb(c.levelPeak),
	}
}

//
// private functions
//

// levelToDb converts a linear meter level to a whole dBFS value clamped to the
// meter range used by the display.
func levelToDb(level float32) int {
	if level <= 0 {
		return meterFloorDb
	}

	db := core.LinearToDB(float64(level))
	if math.IsInf(db, -1) || db < float64(meterFloorDb) {
		return meterFloorDb
	}

	if db > 0 {
		return 0
	}

	return int(db)
}
