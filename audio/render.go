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
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"
	"github.com/go-audio/wav"
)

const renderBlockSize = 4096

// RenderFile pulls the requested length of audio out of an offline engine and
// writes it to a mono wav file. The engine renders as fast as the disk can
// take it, no backend or wall clock pacing is involved.
func RenderFile(engine *Engine, path string, seconds float64, bitDepth int) error {
	if !engine.offline {
		return fmt.Errorf("rendering requires an offline engine")
	}

	if seconds <= 0 {
		return fmt.Errorf("render length must be positive")
	}

	sampleRate := engine.SampleRate()
	totalSamples := int(seconds * float64(sampleRate))

	handle, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer handle.Close()

	encoder := wav.NewEncoder(handle, sampleRate, bitDepth, 1, 1)

	wavFormat := &audio.Format{
		NumChannels: 1,
		SampleRate:  sampleRate,
	}

	slog.Info(fmt.Sprintf("Rendering %gs of audio to '%s'", seconds, path))

	block := make([]float32, renderBlockSize)

	for remaining := totalSamples; remaining > 0; {
		count := renderBlockSize
		if count > remaining {
			count = remaining
		}

		engine.FillBlock(block[:count])

		fBuf := &audio.Float32Buffer{
			Data:   block[:count],
			Format: wavFormat,
		}

		transforms.PCMScaleF32(fBuf, bitDepth)

		iBuf := fBuf.AsIntBuffer()

		if err := encoder.Write(iBuf); err != nil {
			return fmt.Errorf("failed to write samples: %w", err)
		}

		remaining -= count
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize output file: %w", err)
	}

	slog.Info(fmt.Sprintf("Wrote %d samples to '%s'", totalSamples, path))

	return nil
}
