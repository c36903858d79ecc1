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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneSourceRejectsUnplayableFrequencies(t *testing.T) {
	_, err := newToneSource(0, testSampleRate)
	assert.Error(t, err)

	_, err = newToneSource(-100, testSampleRate)
	assert.Error(t, err)

	// nyquist and above cannot be represented
	_, err = newToneSource(float64(testSampleRate)/2.0, testSampleRate)
	assert.Error(t, err)

	_, err = newToneSource(float64(testSampleRate), testSampleRate)
	assert.Error(t, err)
}

func TestToneSourceProducesExpectedWaveform(t *testing.T) {
	// 100 Hz at 8 kHz gives a period of exactly 80 samples
	source, err := newToneSource(100, testSampleRate)
	require.NoError(t, err)

	samples := make([]float32, 80)
	for i := range samples {
		samples[i] = source.Next()
	}

	assert.InDelta(t, 0.0, float64(samples[0]), 1e-9)
	assert.InDelta(t, 1.0, float64(samples[20]), 1e-6)
	assert.InDelta(t, 0.0, float64(samples[40]), 1e-6)
	assert.InDelta(t, -1.0, float64(samples[60]), 1e-6)

	// the next period repeats exactly, phase wrap does not drift
	for i := range samples {
		assert.InDelta(t, float64(samples[i]), float64(source.Next()), 1e-5)
	}
}

func TestToneSourceStaysInRange(t *testing.T) {
	source, err := newToneSource(963, 48000)
	require.NoError(t, err)

	for i := 0; i < 10000; i++ {
		sample := float64(source.Next())
		assert.LessOrEqual(t, sample, 1.0)
		assert.GreaterOrEqual(t, sample, -1.0)
	}
}

func TestToneSourceDescribe(t *testing.T) {
	source, err := newToneSource(528, 48000)
	require.NoError(t, err)

	assert.Equal(t, "tone@528Hz", source.Describe())
}
