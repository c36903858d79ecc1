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
	"os"
	"path/filepath"
	"testing"
	"time"

	"fox-ambience/model"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 8000

func testTone(frequency float64) model.SoundDefinition {
	return model.SoundDefinition{
		Label:     "test tone",
		Kind:      model.SoundTone,
		Frequency: frequency,
	}
}

func testNoise(color model.NoiseColor) model.SoundDefinition {
	return model.SoundDefinition{
		Label: "test noise",
		Kind:  model.SoundNoise,
		Color: color,
	}
}

// writeTestWav creates a wav file with the provided mono samples so file
// loading can be exercised without bundled assets.
func writeTestWav(t *testing.T, path string, sampleRate int, samples []int) {
	t.Helper()

	handle, err := os.Create(path)
	require.NoError(t, err)
	defer handle.Close()

	encoder := wav.NewEncoder(handle, sampleRate, 16, 1, 1)

	buffer := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}

	require.NoError(t, encoder.Write(buffer))
	require.NoError(t, encoder.Close())
}

func TestLoadToneStartsPlaying(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Load(PlayerChannel, testTone(528)))

	status := engine.ChannelStatus(PlayerChannel)
	assert.True(t, status.Playing)
	assert.False(t, status.Loading)
	assert.Equal(t, "tone@528Hz", status.Detail)

	require.NoError(t, engine.Stop(PlayerChannel))

	status = engine.ChannelStatus(PlayerChannel)
	assert.False(t, status.Playing)
	assert.Nil(t, engine.channels[PlayerChannel].source)

	// the selection survives a stop so the channel can restart
	assert.Equal(t, "test tone", status.Label)
	assert.True(t, status.Pending)
}

func TestLoadReplacesPreviousSource(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Load(1, testTone(440)))
	first := engine.channels[1].source

	require.NoError(t, engine.Load(1, testTone(880)))

	assert.Equal(t, "tone@880Hz", engine.ChannelStatus(1).Detail)
	assert.NotSame(t, first, engine.channels[1].source)

	// still exactly one live source on the channel
	assert.NotNil(t, engine.channels[1].source)
}

func TestLoadInvalidToneLeavesChannelEmpty(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	err := engine.Load(1, testTone(float64(testSampleRate)))
	require.Error(t, err)

	status := engine.ChannelStatus(1)
	assert.False(t, status.Playing)
	assert.Empty(t, status.Label)
	assert.Nil(t, engine.channels[1].source)
}

func TestLoadMissingFileRevertsToEmpty(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	missingPath := filepath.Join(t.TempDir(), "nope.wav")

	err := engine.Load(2, model.SoundDefinition{
		Label: "missing",
		Kind:  model.SoundFile,
		Path:  missingPath,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), missingPath)

	status := engine.ChannelStatus(2)
	assert.False(t, status.Playing)
	assert.False(t, status.Loading)
	assert.Empty(t, status.Label)
	assert.Nil(t, engine.channels[2].source)
}

func TestLoadFilePlaysAndLoops(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	path := filepath.Join(t.TempDir(), "loop.wav")

	samples := make([]int, 100)
	for i := range samples {
		samples[i] = 1000
	}
	writeTestWav(t, path, testSampleRate, samples)

	require.NoError(t, engine.Load(1, model.SoundDefinition{
		Label: "loop",
		Kind:  model.SoundFile,
		Path:  path,
	}))

	status := engine.ChannelStatus(1)
	assert.True(t, status.Playing)
	assert.Equal(t, "file:loop.wav", status.Detail)
}

func TestSupersededLoadIsDiscarded(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	path := filepath.Join(t.TempDir(), "late.wav")
	writeTestWav(t, path, testSampleRate, make([]int, 100))

	require.NoError(t, engine.Load(1, testTone(440)))

	// a file load that raced a user action resolves with a stale generation
	// and must leave the winning source alone
	staleGeneration := engine.channels[1].generation - 1
	engine.loadFile(1, staleGeneration, model.SoundDefinition{
		Label: "late",
		Kind:  model.SoundFile,
		Path:  path,
	})

	status := engine.ChannelStatus(1)
	assert.True(t, status.Playing)
	assert.Equal(t, "tone@440Hz", status.Detail)
	assert.Equal(t, "test tone", status.Label)
}

func TestStopIsIdempotent(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Stop(1))
	require.NoError(t, engine.Stop(1))

	require.NoError(t, engine.Load(1, testTone(440)))
	require.NoError(t, engine.Stop(1))
	require.NoError(t, engine.Stop(1))

	assert.False(t, engine.ChannelStatus(1).Playing)
}

func TestRemoveClearsSelection(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Load(1, testNoise(model.NoisePink)))
	require.NoError(t, engine.Remove(1))

	status := engine.ChannelStatus(1)
	assert.False(t, status.Playing)
	assert.Empty(t, status.Label)
	assert.Empty(t, status.Detail)
	assert.Nil(t, engine.channels[1].source)
}

func TestMuteRestoresExactVolume(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Load(1, testTone(440)))
	require.NoError(t, engine.SetVolume(1, -17.5))

	require.NoError(t, engine.SetMute(1, true))

	status := engine.ChannelStatus(1)
	assert.True(t, status.Muted)
	assert.Equal(t, -17.5, status.VolumeDb)

	require.NoError(t, engine.SetMute(1, false))

	status = engine.ChannelStatus(1)
	assert.False(t, status.Muted)
	assert.Equal(t, -17.5, status.VolumeDb)
}

func TestSetVolumeUnmutes(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.SetMute(1, true))
	require.NoError(t, engine.SetVolume(1, -20.0))

	status := engine.ChannelStatus(1)
	assert.False(t, status.Muted)
	assert.Equal(t, -20.0, status.VolumeDb)
}

func TestVolumeClampsToFaderRange(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.SetVolume(1, 10.0))
	assert.Equal(t, MaxVolumeDb, engine.ChannelStatus(1).VolumeDb)

	require.NoError(t, engine.SetVolume(1, -100.0))
	assert.Equal(t, MinVolumeDb, engine.ChannelStatus(1).VolumeDb)

	require.NoError(t, engine.AdjustVolume(1, -10.0))
	assert.Equal(t, MinVolumeDb, engine.ChannelStatus(1).VolumeDb)
}

func TestChannelsAreIndependent(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Load(1, testTone(440)))
	require.NoError(t, engine.SetVolume(1, -6.0))

	firstSource := engine.channels[1].source

	// loading, stopping and removing on channel 2 must not touch channel 1
	require.NoError(t, engine.Load(2, testNoise(model.NoiseBrown)))
	require.NoError(t, engine.SetMute(2, true))
	require.NoError(t, engine.Remove(2))

	status := engine.ChannelStatus(1)
	assert.True(t, status.Playing)
	assert.Equal(t, -6.0, status.VolumeDb)
	assert.False(t, status.Muted)
	assert.Same(t, firstSource, engine.channels[1].source)
}

func TestInvalidChannelIndexIsRejected(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	assert.Error(t, engine.Load(-1, testTone(440)))
	assert.Error(t, engine.Load(ChannelCount, testTone(440)))
	assert.Error(t, engine.SetVolume(ChannelCount, -6.0))
	assert.Error(t, engine.Stop(-1))
}

func TestFillBlockMixesPlayingChannels(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Load(1, testTone(440)))
	require.NoError(t, engine.SetVolume(1, 0.0))

	block := make([]float32, testSampleRate)
	engine.FillBlock(block)

	peak := float32(0)
	for _, sample := range block {
		if sample > peak {
			peak = sample
		}
		assert.LessOrEqual(t, float64(sample), 1.0)
		assert.GreaterOrEqual(t, float64(sample), -1.0)
	}

	// full fader tone through the mix headroom lands near 0.25
	assert.InDelta(t, channelMixLevel, float64(peak), 0.05)
}

func TestMutedChannelRendersSilence(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Load(1, testTone(440)))
	require.NoError(t, engine.SetMute(1, true))

	block := make([]float32, 512)
	engine.FillBlock(block)

	for _, sample := range block {
		assert.Equal(t, float32(0), sample)
	}

	// the source stays attached while muted
	assert.NotNil(t, engine.channels[1].source)
	assert.True(t, engine.ChannelStatus(1).Playing)
}

func TestStoppedEngineRendersSilence(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)

	require.NoError(t, engine.Load(1, testTone(440)))
	engine.Close()

	block := make([]float32, 64)
	block[0] = 42

	engine.FillBlock(block)

	for _, sample := range block {
		assert.Equal(t, float32(0), sample)
	}
}

func TestTogglePlayRestartsSelection(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Load(1, testTone(440)))
	require.NoError(t, engine.TogglePlay(1))

	assert.False(t, engine.ChannelStatus(1).Playing)

	require.NoError(t, engine.TogglePlay(1))

	status := engine.ChannelStatus(1)
	assert.True(t, status.Playing)
	assert.Equal(t, "tone@440Hz", status.Detail)

	// toggling an empty channel has nothing to start
	assert.Error(t, engine.TogglePlay(3))
}

func TestSelectOnStoppedChannelOnlyRemembers(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Select(1, testTone(440)))

	status := engine.ChannelStatus(1)
	assert.False(t, status.Playing)
	assert.True(t, status.Pending)
	assert.Nil(t, engine.channels[1].source)

	// selecting on an active channel hot swaps
	require.NoError(t, engine.TogglePlay(1))
	require.NoError(t, engine.Select(1, testTone(880)))

	status = engine.ChannelStatus(1)
	assert.True(t, status.Playing)
	assert.Equal(t, "tone@880Hz", status.Detail)
}

func TestSignalLevelsTrackPlayback(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Load(1, testTone(440)))
	require.NoError(t, engine.SetVolume(1, 0.0))

	block := make([]float32, testSampleRate)
	engine.FillBlock(block)

	levels := engine.SignalLevels()
	require.Len(t, levels, ChannelCount)

	// the playing channel meters well above the floor, silent ones sit on it
	assert.Greater(t, levels[1].Instant, meterFloorDb)
	assert.Equal(t, meterFloorDb, levels[2].Instant)
}

func TestBackendStartFailureRevertsChannelsAndRetries(t *testing.T) {
	config := &model.Config{
		SampleRate:      testSampleRate,
		DefaultVolumeDb: -12.0,
		Backend:         "bogus",
	}
	engine := NewEngine(config)
	defer engine.Close()

	require.NoError(t, engine.Load(PlayerChannel, testTone(440)))
	require.Eventually(t, engine.Failed, 2*time.Second, 10*time.Millisecond)

	// the failed start must not leave a channel silently "playing"
	status := engine.ChannelStatus(PlayerChannel)
	assert.False(t, status.Playing)
	assert.False(t, status.Loading)
	assert.Empty(t, status.Label)

	// the next play attempt retries the backend instead of staying dead
	config.Backend = "none"
	require.NoError(t, engine.Load(PlayerChannel, testTone(440)))

	require.Eventually(t, func() bool {
		return !engine.Failed() && engine.ChannelStatus(PlayerChannel).Playing
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFileLoadAbandonsWhenBackendFailed(t *testing.T) {
	engine := NewEngine(&model.Config{
		SampleRate:      testSampleRate,
		DefaultVolumeDb: -12.0,
	})
	defer engine.Close()

	path := filepath.Join(t.TempDir(), "stuck.wav")
	writeTestWav(t, path, testSampleRate, make([]int, 100))

	definition := model.SoundDefinition{
		Label: "stuck",
		Kind:  model.SoundFile,
		Path:  path,
	}

	engine.lock.Lock()
	engine.started = true
	engine.failed = true
	channel := engine.channels[1]
	channel.loading = true
	channel.definition = definition
	generation := channel.generation
	engine.lock.Unlock()

	engine.loadFile(1, generation, definition)

	// the channel reverts to empty instead of hanging in Loading forever
	status := engine.ChannelStatus(1)
	assert.False(t, status.Loading)
	assert.False(t, status.Playing)
	assert.Empty(t, status.Label)
}

func TestLevelToDb(t *testing.T) {
	assert.Equal(t, meterFloorDb, levelToDb(0))
	assert.Equal(t, meterFloorDb, levelToDb(-1))
	assert.Equal(t, 0, levelToDb(1))
	assert.Equal(t, 0, levelToDb(2))

	half := levelToDb(0.5)
	assert.InDelta(t, 20.0*math.Log10(0.5), float64(half), 1.0)
}
