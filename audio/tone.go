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
	"math"
)

// toneSource is a phase accumulation sine oscillator. The phase increment is
// fixed at construction time, so a tone never drifts regardless of how many
// samples are pulled.
type toneSource struct {
	frequency float64
	phase     float64
	increment float64
}

func newToneSource(frequency float64, sampleRate int) (*toneSource, error) {
	nyquist := float64(sampleRate) / 2.0

	if frequency <= 0 || frequency >= nyquist {
		return nil, fmt.Errorf("tone frequency %gHz outside playable range (0, %g)", frequency, nyquist)
	}

	return &toneSource{
		frequency: frequency,
		increment: 2.0 * math.Pi * frequency / float64(sampleRate),
	}, nil
}

func (s *toneSource) Next() float32 {
	value := math.Sin(s.phase)

	s.phase += s.increment
	if s.phase >= 2.0*math.Pi {
		s.phase -= 2.0 * math.Pi
	}

	return float32(value)
}

func (s *toneSource) Describe() string {
	return fmt.Sprintf("tone@%gHz", s.frequency)
}

func (s *toneSource) Close() {}
