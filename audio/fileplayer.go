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
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/go-audio/wav"
)

// fileSource loops a fully decoded mono buffer. Decoding, downmixing and
// resampling all happen up front in decodeLoopFile, so Next is a plain
// indexed read and never touches the filesystem.
type fileSource struct {
	name     string
	samples  []float32
	position int
}

func (s *fileSource) Next() float32 {
	value := s.samples[s.position]

	s.position++
	if s.position >= len(s.samples) {
		s.position = 0
	}

	return value
}

func (s *fileSource) Describe() string {
	return "file:" + s.name
}

func (s *fileSource) Close() {
	s.samples = nil
}

//
// private functions
//

// decodeLoopFile reads an entire wav file into memory as mono float samples at
// the engine sample rate. Multi channel input is averaged down to mono and
// files recorded at a different rate are resampled.
func decodeLoopFile(path string, engineRate int) (*fileSource, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	decoder := wav.NewDecoder(handle)

	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file")
	}

	duration, err := decoder.Duration()
	if err != nil {
		return nil, fmt.Errorf("failed to read duration: %w", err)
	}

	if duration <= 0 {
		return nil, fmt.Errorf("file has no playable audio")
	}

	buffer, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}

	channelCount := int(decoder.NumChans)
	bitDepth := int(decoder.BitDepth)

	if channelCount <= 0 || bitDepth <= 0 {
		return nil, fmt.Errorf("malformed wav header")
	}

	samples := downmixNormalize(buffer.Data, channelCount, bitDepth)

	fileRate := int(decoder.SampleRate)
	if fileRate != engineRate {
		samples, err = resampleBuffer(samples, fileRate, engineRate)
		if err != nil {
			return nil, err
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("file has no playable audio")
	}

	return &fileSource{
		name:    filepath.Base(path),
		samples: samples,
	}, nil
}

// downmixNormalize converts interleaved integer PCM into mono float samples in
// the range [-1, 1] by averaging channels per frame.
func downmixNormalize(data []int, channelCount int, bitDepth int) []float32 {
	divisor := float64(int64(1) << (bitDepth - 1))
	frameCount := len(data) / channelCount

	samples := make([]float32, frameCount)

	for frame := 0; frame < frameCount; frame++ {
		sum := 0.0

		for channel := 0; channel < channelCount; channel++ {
			sum += float64(data[frame*channelCount+channel]) / divisor
		}

		samples[frame] = float32(sum / float64(channelCount))
	}

	return samples
}

func resampleBuffer(samples []float32, fromRate int, toRate int) ([]float32, error) {
	resampler, err := resample.NewForRates(float64(fromRate), float64(toRate))
	if err != nil {
		return nil, fmt.Errorf("failed to resample from %d to %d: %w", fromRate, toRate, err)
	}

	input := make([]float64, len(samples))
	for i, sample := range samples {
		input[i] = float64(sample)
	}

	output := resampler.Process(input)

	converted := make([]float32, len(output))
	for i, sample := range output {
		converted[i] = float32(sample)
	}

	return converted, nil
}
