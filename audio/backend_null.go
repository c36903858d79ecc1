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
	"time"

	"fox-ambience/model"
)

// nullBackend pulls blocks at wall clock pace and throws them away. Used for
// simulation runs and headless operation where no device should be opened.
type nullBackend struct {
	sampleRate int
	bufferMs   int

	stopChan chan bool
}

func newNullBackend(config *model.Config) *nullBackend {
	return &nullBackend{
		sampleRate: config.SampleRate,
		bufferMs:   config.BufferMs,
		stopChan:   make(chan bool, 1),
	}
}

func (b *nullBackend) Start(fill func([]float32)) error {
	blockSize := b.sampleRate * b.bufferMs / 1000
	if blockSize <= 0 {
		blockSize = 1024
	}

	block := make([]float32, blockSize)

	go func() {
		t := time.NewTicker(time.Duration(b.bufferMs) * time.Millisecond)
		defer t.Stop()

		for range t.C {
			if len(b.stopChan) > 0 {
				return
			}

			fill(block)
		}
	}()

	return nil
}

func (b *nullBackend) Resume() error {
	return nil
}

func (b *nullBackend) Close() error {
	if len(b.stopChan) == 0 {
		b.stopChan <- true
	}

	return nil
}

func (b *nullBackend) Name() string {
	return "none"
}
