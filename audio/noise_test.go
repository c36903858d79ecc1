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

func TestNoiseSourceRangeAndVariation(t *testing.T) {
	colors := []model.NoiseColor{
		model.NoiseWhite,
		model.NoisePink,
		model.NoiseBrown,
		model.NoiseGreen,
		model.NoiseBath,
	}

	for _, color := range colors {
		source, err := newNoiseSource(color, 48000)
		require.NoError(t, err, color.String())

		peak := float32(0)

		for i := 0; i < 48000; i++ {
			sample := source.Next()

			require.LessOrEqual(t, float64(sample), 1.0, color.String())
			require.GreaterOrEqual(t, float64(sample), -1.0, color.String())

			if sample < 0 {
				sample = -sample
			}
			if sample > peak {
				peak = sample
			}
		}

		// noise that never moves is not noise
		assert.Greater(t, float64(peak), 0.01, color.String())
	}
}

func TestDerivedColorsUseFilteredBase(t *testing.T) {
	// the derived approximations are a fixed mapping, green is band passed
	// white and bath is low passed brown
	green, err := newNoiseSource(model.NoiseGreen, 48000)
	require.NoError(t, err)
	assert.Equal(t, model.NoiseWhite, green.base)
	assert.NotNil(t, green.filter)

	bath, err := newNoiseSource(model.NoiseBath, 48000)
	require.NoError(t, err)
	assert.Equal(t, model.NoiseBrown, bath.base)
	assert.NotNil(t, bath.filter)
}

func TestNativeColorsAreUnfiltered(t *testing.T) {
	for _, color := range []model.NoiseColor{model.NoiseWhite, model.NoisePink, model.NoiseBrown} {
		source, err := newNoiseSource(color, 48000)
		require.NoError(t, err)

		assert.Equal(t, color, source.base)
		assert.Nil(t, source.filter)
	}
}

func TestDerivedNoiseTableIsComplete(t *testing.T) {
	require.Len(t, derivedNoiseColors, 2)

	assert.Contains(t, derivedNoiseColors, model.NoiseGreen)
	assert.Contains(t, derivedNoiseColors, model.NoiseBath)
}

func TestNoiseSourceRejectsUnknownColor(t *testing.T) {
	_, err := newNoiseSource(model.NoiseColor(99), 48000)
	assert.Error(t, err)
}

func TestNoiseSourceDescribe(t *testing.T) {
	source, err := newNoiseSource(model.NoiseGreen, 48000)
	require.NoError(t, err)

	assert.Equal(t, "noise:green", source.Describe())
}

func TestNoiseSequencesAreDeterministic(t *testing.T) {
	// two generators of the same color start from the same seed, useful for
	// reproducing reports
	a, err := newNoiseSource(model.NoisePink, 48000)
	require.NoError(t, err)

	b, err := newNoiseSource(model.NoisePink, 48000)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}
