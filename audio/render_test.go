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
	"os"
	"path/filepath"
	"testing"

	"fox-ambience/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-audio/wav"
)

func TestRenderFileWritesExpectedTone(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	require.NoError(t, engine.Load(PlayerChannel, testTone(100)))
	require.NoError(t, engine.SetVolume(PlayerChannel, 0.0))

	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, RenderFile(engine, path, 2.0, 16))

	handle, err := os.Open(path)
	require.NoError(t, err)
	defer handle.Close()

	decoder := wav.NewDecoder(handle)
	require.True(t, decoder.IsValidFile())

	buffer, err := decoder.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, 2*testSampleRate, len(buffer.Data))
	assert.Equal(t, testSampleRate, int(decoder.SampleRate))

	// count zero crossings over the second half, past the fade in ramp.
	// a 100 Hz tone crosses zero 200 times per second.
	crossings := 0
	half := len(buffer.Data) / 2

	for i := half + 1; i < len(buffer.Data); i++ {
		if (buffer.Data[i-1] < 0) != (buffer.Data[i] < 0) {
			crossings++
		}
	}

	assert.InDelta(t, 200, crossings, 4)
}

func TestRenderFileRequiresOfflineEngine(t *testing.T) {
	engine := NewEngine(&model.Config{
		SampleRate:      testSampleRate,
		DefaultVolumeDb: -12.0,
	})
	defer engine.Close()

	err := RenderFile(engine, filepath.Join(t.TempDir(), "x.wav"), 1.0, 16)
	assert.Error(t, err)
}

func TestRenderFileRejectsBadLength(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	err := RenderFile(engine, filepath.Join(t.TempDir(), "x.wav"), 0, 16)
	assert.Error(t, err)

	err = RenderFile(engine, filepath.Join(t.TempDir(), "x.wav"), -5, 16)
	assert.Error(t, err)
}

func TestRenderFileSilenceWhenNothingPlays(t *testing.T) {
	engine := NewOfflineEngine(testSampleRate, -12.0)
	defer engine.Close()

	path := filepath.Join(t.TempDir(), "silence.wav")
	require.NoError(t, RenderFile(engine, path, 0.5, 16))

	handle, err := os.Open(path)
	require.NoError(t, err)
	defer handle.Close()

	decoder := wav.NewDecoder(handle)
	require.True(t, decoder.IsValidFile())

	buffer, err := decoder.FullPCMBuffer()
	require.NoError(t, err)

	require.Equal(t, testSampleRate/2, len(buffer.Data))
	for _, sample := range buffer.Data {
		assert.Equal(t, 0, sample)
	}
}
