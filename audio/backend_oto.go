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
	"encoding/binary"
	"math"
	"time"

	"fox-ambience/model"

	"github.com/ebitengine/oto/v3"
)

// otoBackend plays through the default system output device. The oto player
// pulls PCM bytes through an io.Reader, blockReader adapts that pull into the
// engine's float block callback.
type otoBackend struct {
	sampleRate int
	bufferMs   int

	context *oto.Context
	player  *oto.Player
}

func newOtoBackend(config *model.Config) *otoBackend {
	return &otoBackend{
		sampleRate: config.SampleRate,
		bufferMs:   config.BufferMs,
	}
}

func (b *otoBackend) Start(fill func([]float32)) error {
	options := &oto.NewContextOptions{
		SampleRate:   b.sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(b.bufferMs) * time.Millisecond,
	}

	context, ready, err := oto.NewContext(options)
	if err != nil {
		return err
	}

	<-ready

	b.context = context
	b.player = context.NewPlayer(&blockReader{fill: fill})
	b.player.Play()

	return nil
}

func (b *otoBackend) Resume() error {
	if b.context == nil {
		return nil
	}

	return b.context.Resume()
}

func (b *otoBackend) Close() error {
	if b.player != nil {
		err := b.player.Close()
		b.player = nil
		return err
	}

	return nil
}

func (b *otoBackend) Name() string {
	return "oto"
}

// blockReader turns oto's byte pulls into float block renders. The scratch
// buffer is reused across reads, oto settles on a stable read size quickly.
type blockReader struct {
	fill    func([]float32)
	scratch []float32
}

func (r *blockReader) Read(p []byte) (int, error) {
	sampleCount := len(p) / 4

	if len(r.scratch) < sampleCount {
		r.scratch = make([]float32, sampleCount)
	}

	block := r.scratch[:sampleCount]
	r.fill(block)

	for i, sample := range block {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))
	}

	return sampleCount * 4, nil
}
