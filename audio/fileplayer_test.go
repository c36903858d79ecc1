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

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLoopFileReadsMonoWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.wav")

	samples := make([]int, 200)
	for i := range samples {
		samples[i] = 16384 // half scale at 16 bit
	}
	writeTestWav(t, path, testSampleRate, samples)

	source, err := decodeLoopFile(path, testSampleRate)
	require.NoError(t, err)
	defer source.Close()

	assert.Equal(t, "file:mono.wav", source.Describe())
	require.Len(t, source.samples, 200)
	assert.InDelta(t, 0.5, float64(source.samples[0]), 0.001)
}

func TestDecodeLoopFileDownmixesStereo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")

	handle, err := os.Create(path)
	require.NoError(t, err)

	encoder := wav.NewEncoder(handle, testSampleRate, 16, 2, 1)

	// opposite polarity channels cancel to silence when averaged
	data := make([]int, 100*2)
	for frame := 0; frame < 100; frame++ {
		data[frame*2] = 16384
		data[frame*2+1] = -16384
	}

	buffer := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: testSampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	require.NoError(t, encoder.Write(buffer))
	require.NoError(t, encoder.Close())
	require.NoError(t, handle.Close())

	source, err := decodeLoopFile(path, testSampleRate)
	require.NoError(t, err)
	defer source.Close()

	require.Len(t, source.samples, 100)
	for _, sample := range source.samples {
		assert.InDelta(t, 0.0, float64(sample), 0.001)
	}
}

func TestDecodeLoopFileResamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slow.wav")
	writeTestWav(t, path, 4000, make([]int, 400))

	source, err := decodeLoopFile(path, 8000)
	require.NoError(t, err)
	defer source.Close()

	// doubling the rate roughly doubles the sample count, the polyphase
	// filter trims some edge transient
	assert.InDelta(t, 800, len(source.samples), 100)
}

func TestDecodeLoopFileMissingFile(t *testing.T) {
	_, err := decodeLoopFile(filepath.Join(t.TempDir(), "missing.wav"), testSampleRate)
	assert.Error(t, err)
}

func TestDecodeLoopFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("this is not audio data"), 0644))

	_, err := decodeLoopFile(path, testSampleRate)
	assert.Error(t, err)
}

func TestDecodeLoopFileRejectsEmptyAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")

	handle, err := os.Create(path)
	require.NoError(t, err)

	// a valid header with zero frames of audio
	encoder := wav.NewEncoder(handle, testSampleRate, 16, 1, 1)
	require.NoError(t, encoder.Close())
	require.NoError(t, handle.Close())

	_, err = decodeLoopFile(path, testSampleRate)
	assert.Error(t, err)
}

func TestFileSourceLoopsSeamlessly(t *testing.T) {
	source := &fileSource{
		name:    "loop.wav",
		samples: []float32{0.1, 0.2, 0.3},
	}

	expected := []float32{0.1, 0.2, 0.3, 0.1, 0.2, 0.3, 0.1}

	for i, want := range expected {
		assert.Equal(t, want, source.Next(), "sample %d", i)
	}
}
