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

	"fox-ambience/model"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

const (
	lfsrSeed = 0x7FFFFF
	lfsrMask = 0x7FFFFF
)

// derivedNoise maps a derived noise color onto a base generator plus a shaping
// filter. Derived colors have no generator of their own.
type derivedNoise struct {
	base   model.NoiseColor
	design func(sampleRate float64) biquad.Coefficients
}

var derivedNoiseColors = map[model.NoiseColor]derivedNoise{
	model.NoiseGreen: {
		base: model.NoiseWhite,
		design: func(sampleRate float64) biquad.Coefficients {
			return design.Bandpass(500.0, 1.0, sampleRate)
		},
	},
	model.NoiseBath: {
		base: model.NoiseBrown,
		design: func(sampleRate float64) biquad.Coefficients {
			return design.Lowpass(800.0, 0.707, sampleRate)
		},
	},
}

// noiseSource generates colored noise from a 23 bit LFSR white source. Pink
// shaping uses the Kellet economy filter, brown uses a leaky integrator, and
// derived colors run their base generator through a biquad section.
type noiseSource struct {
	color model.NoiseColor
	base  model.NoiseColor

	shift uint32

	pink0 float64
	pink1 float64
	pink2 float64

	brown float64

	filter *biquad.Section
}

func newNoiseSource(color model.NoiseColor, sampleRate int) (*noiseSource, error) {
	source := &noiseSource{
		color: color,
		base:  color,
		shift: lfsrSeed,
	}

	if derived, exists := derivedNoiseColors[color]; exists {
		source.base = derived.base
		source.filter = biquad.NewSection(derived.design(float64(sampleRate)))
	} else if color != model.NoiseWhite && color != model.NoisePink && color != model.NoiseBrown {
		return nil, fmt.Errorf("unknown noise color '%s'", color.String())
	}

	return source, nil
}

func (s *noiseSource) Next() float32 {
	var value float64

	switch s.base {
	case model.NoisePink:
		value = s.nextPink()
	case model.NoiseBrown:
		value = s.nextBrown()
	default:
		value = s.nextWhite()
	}

	if s.filter != nil {
		value = core.FlushDenormals(s.filter.ProcessSample(value))
	}

	return float32(core.Clamp(value, -1.0, 1.0))
}

func (s *noiseSource) Describe() string {
	return "noise:" + s.color.String()
}

func (s *noiseSource) Close() {}

//
// private functions
//

func (s *noiseSource) nextWhite() float64 {
	newBit := ((s.shift >> 22) ^ (s.shift >> 17)) & 1
	s.shift = ((s.shift << 1) | newBit) & lfsrMask

	return float64(s.shift&1)*2.0 - 1.0
}

func (s *noiseSource) nextPink() float64 {
	white := s.nextWhite()

	s.pink0 = 0.99765*s.pink0 + white*0.0990460
	s.pink1 = 0.96300*s.pink1 + white*0.2965164
	s.pink2 = 0.57000*s.pink2 + white*1.0526913

	return (s.pink0 + s.pink1 + s.pink2 + white*0.1848) * 0.11
}

func (s *noiseSource) nextBrown() float64 {
	white := s.nextWhite()

	s.brown = (s.brown + white*0.02) / 1.02

	return s.brown * 3.5
}
