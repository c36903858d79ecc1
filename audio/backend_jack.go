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
	"strings"

	"fox-ambience/model"

	jack "github.com/hairlesshobo/go-jack"
)

// jackBackend renders into a mono JACK output port. The server is never
// spawned, users opting into JACK are expected to already be running one.
type jackBackend struct {
	clientName       string
	playbackPortName string
	engineRate       int

	client  *jack.Client
	port    *jack.Port
	fill    func([]float32)
	scratch []float32
}

func newJackBackend(config *model.Config) *jackBackend {
	return &jackBackend{
		clientName:       config.JackClientName,
		playbackPortName: config.PlaybackPortName,
		engineRate:       config.SampleRate,
	}
}

func (b *jackBackend) Start(fill func([]float32)) error {
	slog.Info("Connecting to JACK server")

	client, jackStatus := jack.ClientOpen(b.clientName, jack.NoStartServer)
	if jackStatus != 0 {
		return fmt.Errorf("failed to connect to JACK server: %s", jack.StrError(jackStatus))
	}

	b.client = client
	b.fill = fill

	// the server owns the sample rate, sources were built for the engine
	// rate so a mismatch plays pitch shifted rather than failing outright
	serverRate := int(client.GetSampleRate())
	if serverRate != b.engineRate {
		slog.Warn(fmt.Sprintf("JACK server runs at %d Hz but engine renders at %d Hz, playback will be pitch shifted", serverRate, b.engineRate))
	}

	jack.SetErrorFunction(func(message string) {
		slog.Debug("JACK error: " + message)
	})

	jack.SetInfoFunction(func(message string) {
		slog.Debug("JACK info: " + message)
	})

	b.port = client.PortRegister("playback", jack.DEFAULT_AUDIO_TYPE, jack.PortIsOutput, 0)
	if b.port == nil {
		client.Close()
		return fmt.Errorf("failed to register playback port")
	}

	if code := client.SetProcessCallback(b.process); code != 0 {
		client.Close()
		return fmt.Errorf("failed to set process callback: %s", jack.StrError(code))
	}

	client.SetXRunCallback(func() int {
		slog.Warn("JACK xrun")
		return 0
	})

	client.OnShutdown(func() {
		slog.Error("JACK server shut down")
	})

	if code := client.Activate(); code != 0 {
		client.Close()
		return fmt.Errorf("failed to activate client: %s", jack.StrError(code))
	}

	b.connectPlaybackPorts()

	slog.Info("JACK server connected")

	return nil
}

// Resume is a no-op, the JACK server keeps the graph rolling on its own.
func (b *jackBackend) Resume() error {
	return nil
}

func (b *jackBackend) Close() error {
	if b.client != nil {
		b.client.Close()
		b.client = nil
	}

	return nil
}

func (b *jackBackend) Name() string {
	return "jack"
}

//
// private functions
//

func (b *jackBackend) process(nframes uint32) int {
	buffer := b.port.GetBuffer(nframes)

	if len(b.scratch) < int(nframes) {
		b.scratch = make([]float32, nframes)
	}

	block := b.scratch[:nframes]
	b.fill(block)

	for i, sample := range block {
		buffer[i] = jack.AudioSample(sample)
	}

	return 0
}

func (b *jackBackend) connectPlaybackPorts() {
	if b.playbackPortName == "" {
		return
	}

	sourceName := fmt.Sprintf("%s:playback", b.clientName)

	for _, targetName := range strings.Split(b.playbackPortName, ",") {
		targetName = strings.TrimSpace(targetName)
		if targetName == "" {
			continue
		}

		slog.Debug(fmt.Sprintf("Connected port %s to port %s", sourceName, targetName))
		b.client.Connect(sourceName, targetName)
	}
}
