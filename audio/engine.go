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
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"fox-ambience/model"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

const (
	// ChannelCount is the number of playback slots: the player channel plus
	// four mixer channels
	ChannelCount = 5

	// PlayerChannel is the slot driven by the single sound player view
	PlayerChannel = 0

	// MixerChannelCount is the number of slots shown by the mixer view
	MixerChannelCount = 4

	MinVolumeDb = -40.0
	MaxVolumeDb = 0.0

	// channelMixLevel reserves headroom on the mix bus so four channels at
	// full volume stay clear of clipping
	channelMixLevel = 0.25

	meterFloorDb = -60

	// one pole smoothing towards the target gain, applied per sample
	gainSmoothCoeff = 0.0015

	peakDecay = float32(0.99)

	// a finished file load waits this long for the backend to come up
	// before abandoning the attach
	loadAttachAttempts = 50
	loadAttachInterval = 100 * time.Millisecond
)

type EngineStats struct {
	BackendName string
	SampleRate  int
	BlockCount  uint64

	// Load is the render time as a percentage of the block wall budget
	Load float64
}

// Engine owns the channels and the audio backend. The backend is created
// lazily on the first load and started asynchronously, channel operations are
// valid at any point before, during and after backend startup.
type Engine struct {
	lock sync.RWMutex

	config   *model.Config
	backend  Backend
	channels [ChannelCount]*channel

	sampleRate int

	// offline engines never create a backend, blocks are pulled directly
	// through FillBlock by the render command and tests
	offline bool

	started bool
	running bool
	failed  bool
	closed  bool

	blockCount  atomic.Uint64
	loadPercent atomic.Int64
}

func NewEngine(config *model.Config) *Engine {
	engine := &Engine{
		config:     config,
		sampleRate: config.SampleRate,
	}

	for i := range engine.channels {
		engine.channels[i] = newChannel(i, config.DefaultVolumeDb)
	}

	return engine
}

// NewOfflineEngine creates an engine with no audio backend. File loads run
// synchronously and blocks are produced only when the caller asks for them.
func NewOfflineEngine(sampleRate int, defaultVolumeDb float64) *Engine {
	engine := &Engine{
		sampleRate: sampleRate,
		offline:    true,
		started:    true,
		running:    true,
	}

	for i := range engine.channels {
		engine.channels[i] = newChannel(i, defaultVolumeDb)
	}

	return engine
}

//
// channel operations
//

// Load replaces whatever the channel is doing with the provided sound. The
// previous source is detached before the new one is constructed. Tones and
// noise attach synchronously, files decode on a background goroutine and
// attach when ready unless a later operation superseded the load.
func (e *Engine) Load(channelIndex int, definition model.SoundDefinition) error {
	if err := e.checkChannel(channelIndex); err != nil {
		return err
	}

	e.lock.Lock()

	if e.closed {
		e.lock.Unlock()
		return fmt.Errorf("engine is shut down")
	}

	e.ensureStartedLocked()

	channel := e.channels[channelIndex]
	channel.detachSource()
	channel.definition = definition

	switch definition.Kind {
	case model.SoundTone, model.SoundNoise:
		source, err := e.buildGenerator(definition)
		if err != nil {
			channel.definition = model.SoundDefinition{}
			e.lock.Unlock()
			return err
		}

		e.attachLocked(channel, source)
		e.lock.Unlock()

		slog.Info(fmt.Sprintf("Channel %d playing %s", channelIndex, source.Describe()))
		return nil

	case model.SoundFile:
		channel.loading = true
		generation := channel.generation
		e.lock.Unlock()

		if e.offline {
			return e.loadFileSync(channelIndex, generation, definition)
		}

		go e.loadFile(channelIndex, generation, definition)
		return nil
	}

	channel.definition = model.SoundDefinition{}
	e.lock.Unlock()

	return fmt.Errorf("sound '%s' has unknown kind", definition.Label)
}

// Select records a sound choice on the channel. A playing or loading channel
// hot swaps to the new sound, a stopped channel just remembers the selection.
func (e *Engine) Select(channelIndex int, definition model.SoundDefinition) error {
	if err := e.checkChannel(channelIndex); err != nil {
		return err
	}

	e.lock.Lock()
	channel := e.channels[channelIndex]
	active := channel.playing || channel.loading

	if !active {
		channel.definition = definition
		e.lock.Unlock()
		return nil
	}

	e.lock.Unlock()

	return e.Load(channelIndex, definition)
}

// TogglePlay stops an active channel or starts the remembered selection on a
// stopped one.
func (e *Engine) TogglePlay(channelIndex int) error {
	if err := e.checkChannel(channelIndex); err != nil {
		return err
	}

	e.lock.Lock()
	channel := e.channels[channelIndex]

	if channel.playing || channel.loading {
		channel.detachSource()
		e.lock.Unlock()

		slog.Info(fmt.Sprintf("Channel %d stopped", channelIndex))
		return nil
	}

	definition := channel.definition
	e.lock.Unlock()

	if definition.Label == "" {
		return fmt.Errorf("no sound selected on channel %d", channelIndex)
	}

	return e.Load(channelIndex, definition)
}

// Stop releases the channel's source. The sound selection is kept so the
// channel can be restarted without picking again.
func (e *Engine) Stop(channelIndex int) error {
	if err := e.checkChannel(channelIndex); err != nil {
		return err
	}

	e.lock.Lock()
	e.channels[channelIndex].detachSource()
	e.lock.Unlock()

	return nil
}

// Remove stops the channel and clears its sound selection entirely.
func (e *Engine) Remove(channelIndex int) error {
	if err := e.checkChannel(channelIndex); err != nil {
		return err
	}

	e.lock.Lock()
	channel := e.channels[channelIndex]
	channel.detachSource()
	channel.definition = model.SoundDefinition{}
	e.lock.Unlock()

	return nil
}

// StopAll releases every channel's source, selections are kept.
func (e *Engine) StopAll() {
	e.lock.Lock()
	for _, channel := range e.channels {
		channel.detachSource()
	}
	e.lock.Unlock()
}

// SetVolume sets the channel volume in dB, clamped to the fader range.
// Setting a volume always unmutes, the user just asked to hear something.
func (e *Engine) SetVolume(channelIndex int, volumeDb float64) error {
	if err := e.checkChannel(channelIndex); err != nil {
		return err
	}

	e.lock.Lock()
	channel := e.channels[channelIndex]
	channel.volumeDb = core.Clamp(volumeDb, MinVolumeDb, MaxVolumeDb)
	channel.muted = false
	channel.refreshTargetGain()
	e.lock.Unlock()

	return nil
}

// AdjustVolume nudges the channel volume by a dB delta.
func (e *Engine) AdjustVolume(channelIndex int, deltaDb float64) error {
	if err := e.checkChannel(channelIndex); err != nil {
		return err
	}

	e.lock.Lock()
	channel := e.channels[channelIndex]
	channel.volumeDb = core.Clamp(channel.volumeDb+deltaDb, MinVolumeDb, MaxVolumeDb)
	channel.muted = false
	channel.refreshTargetGain()
	e.lock.Unlock()

	return nil
}

// SetMute mutes or unmutes the channel. The volume setting is untouched, so
// unmuting restores exactly the level the channel had before.
func (e *Engine) SetMute(channelIndex int, muted bool) error {
	if err := e.checkChannel(channelIndex); err != nil {
		return err
	}

	e.lock.Lock()
	channel := e.channels[channelIndex]
	channel.muted = muted
	channel.refreshTargetGain()
	e.lock.Unlock()

	return nil
}

func (e *Engine) ToggleMute(channelIndex int) error {
	if err := e.checkChannel(channelIndex); err != nil {
		return err
	}

	e.lock.Lock()
	channel := e.channels[channelIndex]
	channel.muted = !channel.muted
	channel.refreshTargetGain()
	e.lock.Unlock()

	return nil
}

//
// snapshots
//

func (e *Engine) Status() []model.ChannelStatus {
	e.lock.RLock()
	defer e.lock.RUnlock()

	statuses := make([]model.ChannelStatus, ChannelCount)
	for i, channel := range e.channels {
		statuses[i] = channel.snapshot()
	}

	return statuses
}

func (e *Engine) ChannelStatus(channelIndex int) model.ChannelStatus {
	e.lock.RLock()
	defer e.lock.RUnlock()

	if channelIndex < 0 || channelIndex >= ChannelCount {
		return model.ChannelStatus{Index: channelIndex}
	}

	return e.channels[channelIndex].snapshot()
}

func (e *Engine) SignalLevels() []model.SignalLevel {
	e.lock.RLock()
	defer e.lock.RUnlock()

	levels := make([]model.SignalLevel, ChannelCount)
	for i, channel := range e.channels {
		levels[i] = channel.signalLevel()
	}

	return levels
}

func (e *Engine) AnyPlaying() bool {
	e.lock.RLock()
	defer e.lock.RUnlock()

	for _, channel := range e.channels {
		if channel.playing || channel.loading {
			return true
		}
	}

	return false
}

// Failed reports whether the audio backend failed to start. A failed engine
// keeps accepting selections, a later play attempt retries the backend.
func (e *Engine) Failed() bool {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.failed
}

func (e *Engine) SampleRate() int {
	return e.sampleRate
}

func (e *Engine) Stats() EngineStats {
	e.lock.RLock()
	name := "none"
	if e.backend != nil {
		name = e.backend.Name()
	}
	e.lock.RUnlock()

	return EngineStats{
		BackendName: name,
		SampleRate:  e.sampleRate,
		BlockCount:  e.blockCount.Load(),
		Load:        float64(e.loadPercent.Load()) / 100.0,
	}
}

//
// lifecycle managment
//

// Resume kicks the backend after a suspend, for example when the host comes
// back from sleep. Safe to call at any time.
func (e *Engine) Resume() error {
	e.lock.RLock()
	backend := e.backend
	running := e.running
	e.lock.RUnlock()

	if !running || backend == nil {
		return nil
	}

	return backend.Resume()
}

// Close stops every channel and tears down the backend. The backend close
// happens outside the engine lock so an in flight render can drain.
func (e *Engine) Close() {
	e.lock.Lock()

	if e.closed {
		e.lock.Unlock()
		return
	}

	e.closed = true
	e.running = false

	for _, channel := range e.channels {
		channel.detachSource()
	}

	backend := e.backend
	e.backend = nil
	e.lock.Unlock()

	if backend != nil {
		if err := backend.Close(); err != nil {
			slog.Warn(fmt.Sprintf("Error closing audio backend: %v", err))
		}
	}
}

// FillBlock renders one block of mono samples into the provided buffer. This
// is the backend pull callback, offline callers drive it directly.
func (e *Engine) FillBlock(block []float32) {
	start := time.Now()

	e.lock.RLock()

	for i := range block {
		block[i] = 0
	}

	if e.closed {
		e.lock.RUnlock()
		return
	}

	// only the single render goroutine mutates gain and the meter fields,
	// holding RLock keeps channel state changes out of the middle of a block
	for _, channel := range e.channels {
		source := channel.source

		if source == nil || !channel.playing {
			channel.levelInstant = 0
			channel.levelPeak *= peakDecay
			continue
		}

		blockPeak := float32(0)

		for i := range block {
			channel.gain += (channel.targetGain - channel.gain) * gainSmoothCoeff
			sample := source.Next() * float32(channel.gain)
			block[i] += sample * channelMixLevel

			if sample < 0 {
				sample = -sample
			}
			if sample > blockPeak {
				blockPeak = sample
			}
		}

		channel.levelInstant = blockPeak
		if blockPeak > channel.levelPeak {
			channel.levelPeak = blockPeak
		} else {
			channel.levelPeak *= peakDecay
		}
	}

	for i := range block {
		block[i] = float32(core.Clamp(float64(block[i]), -1.0, 1.0))
	}

	e.lock.RUnlock()

	e.blockCount.Add(1)

	if len(block) > 0 && e.sampleRate > 0 {
		budget := time.Duration(len(block)) * time.Second / time.Duration(e.sampleRate)
		if budget > 0 {
			e.loadPercent.Store(int64(time.Since(start) * 10000 / budget))
		}
	}
}

//
// private functions
//

func (e *Engine) checkChannel(channelIndex int) error {
	if channelIndex < 0 || channelIndex >= ChannelCount {
		return fmt.Errorf("invalid channel %d", channelIndex)
	}

	return nil
}

func (e *Engine) buildGenerator(definition model.SoundDefinition) (Source, error) {
	switch definition.Kind {
	case model.SoundTone:
		return newToneSource(definition.Frequency, e.sampleRate)
	case model.SoundNoise:
		return newNoiseSource(definition.Color, e.sampleRate)
	}

	return nil, fmt.Errorf("sound '%s' has unknown kind", definition.Label)
}

// attachLocked installs a source on the channel and starts it from silence so
// the gain smoothing fades it in. Caller holds the write lock.
func (e *Engine) attachLocked(channel *channel, source Source) {
	channel.source = source
	channel.playing = true
	channel.loading = false
	channel.gain = 0
	channel.refreshTargetGain()
}

// ensureStartedLocked kicks off backend startup on the first load. Startup
// runs on its own goroutine so a slow device never stalls the caller, loads
// that finish early wait for the running flag. A failed startup clears the
// started flag, so every play attempt after a failure retries the backend.
func (e *Engine) ensureStartedLocked() {
	if e.started || e.offline {
		return
	}

	e.started = true
	e.failed = false

	go e.startBackend()
}

func (e *Engine) startBackend() {
	backend, err := NewBackend(e.config)
	if err == nil {
		err = backend.Start(e.FillBlock)
	}

	e.lock.Lock()

	if e.closed {
		e.lock.Unlock()

		if err == nil {
			backend.Close()
		}
		return
	}

	if err != nil {
		e.failed = true
		e.started = false

		// nothing will ever pull samples, release whatever was mid flight
		for _, channel := range e.channels {
			channel.detachSource()
			channel.definition = model.SoundDefinition{}
		}

		e.lock.Unlock()

		slog.Error(fmt.Sprintf("Failed to start audio backend: %v", err))
		return
	}

	e.backend = backend
	e.running = true
	e.lock.Unlock()

	slog.Info(fmt.Sprintf("Audio backend '%s' running at %d Hz", backend.Name(), e.sampleRate))
}

// loadFile decodes a file off the lock and attaches the result, unless the
// channel moved on while we were reading. The generation captured at load
// time is rechecked at every step that could have raced a user action.
func (e *Engine) loadFile(channelIndex int, generation uint64, definition model.SoundDefinition) {
	source, err := decodeLoopFile(definition.Path, e.sampleRate)

	if err != nil {
		e.abandonLoad(channelIndex, generation, definition, err)
		return
	}

	// the backend comes up asynchronously, give it a bounded window before
	// declaring the load dead
	for attempt := 0; attempt < loadAttachAttempts; attempt++ {
		e.lock.Lock()

		channel := e.channels[channelIndex]
		if channel.generation != generation || e.closed {
			e.lock.Unlock()
			source.Close()

			slog.Debug(fmt.Sprintf("Discarding superseded load of '%s'", definition.Label))
			return
		}

		if e.failed {
			e.lock.Unlock()
			source.Close()
			e.abandonLoad(channelIndex, generation, definition,
				fmt.Errorf("audio backend failed to start"))
			return
		}

		if e.running {
			e.attachLocked(channel, source)
			e.lock.Unlock()

			slog.Info(fmt.Sprintf("Channel %d playing %s", channelIndex, source.Describe()))
			return
		}

		e.lock.Unlock()
		time.Sleep(loadAttachInterval)
	}

	source.Close()
	e.abandonLoad(channelIndex, generation, definition,
		fmt.Errorf("audio backend never became ready"))
}

func (e *Engine) loadFileSync(channelIndex int, generation uint64, definition model.SoundDefinition) error {
	source, err := decodeLoopFile(definition.Path, e.sampleRate)
	if err != nil {
		e.abandonLoad(channelIndex, generation, definition, err)
		return fmt.Errorf("failed to load '%s': %w", definition.Path, err)
	}

	e.lock.Lock()

	channel := e.channels[channelIndex]
	if channel.generation != generation || e.closed {
		e.lock.Unlock()
		source.Close()
		return nil
	}

	e.attachLocked(channel, source)
	e.lock.Unlock()

	return nil
}

// abandonLoad reverts a channel to empty after a failed load, unless a later
// operation already claimed the channel.
func (e *Engine) abandonLoad(channelIndex int, generation uint64, definition model.SoundDefinition, cause error) {
	e.lock.Lock()

	channel := e.channels[channelIndex]
	if channel.generation != generation {
		e.lock.Unlock()
		return
	}

	channel.loading = false
	channel.definition = model.SoundDefinition{}
	e.lock.Unlock()

	slog.Error(fmt.Sprintf("Failed to load '%s': %v", definition.Path, cause))
}
