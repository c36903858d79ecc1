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
package app

import (
	"fmt"
	"log/slog"
	"os"

	"fox-ambience/audio"
	"fox-ambience/model"
	"fox-ambience/util"

	"github.com/spf13/cobra"
)

var (
	argRenderSound      string
	argRenderPreset     string
	argRenderOut        string
	argRenderSeconds    float64
	argRenderSampleRate int
	argRenderBitDepth   int

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render a catalog sound or a preset mix to a wav file",

		Run: func(cmd *cobra.Command, args []string) {
			ConfigureTextLogger(slog.LevelInfo)

			config := util.ReadConfig(collectArgs())

			runRender(config)
		},
	}
)

func init() {
	renderCmd.Flags().StringVarP(&argRenderSound, "sound", "s", "", "Catalog sound to render")
	renderCmd.Flags().StringVarP(&argRenderPreset, "preset", "p", "", "Mixer preset to render instead of a single sound")
	renderCmd.Flags().StringVarP(&argRenderOut, "out", "O", "render.wav", "Output wav file path")
	renderCmd.Flags().Float64VarP(&argRenderSeconds, "length", "l", 30.0, "Length of audio to render, in seconds")
	renderCmd.Flags().IntVar(&argRenderSampleRate, "sample-rate", 0, "Render sample rate, defaults to the configured engine rate")
	renderCmd.Flags().IntVar(&argRenderBitDepth, "bit-depth", 16, "Output bit depth, valid options: 16, 24")
}

// runRender drives the same mix path the live player uses, just pulled by the
// disk instead of an audio device.
func runRender(config *model.Config) {
	if argRenderSound == "" && argRenderPreset == "" {
		slog.Error("Nothing to render, provide --sound or --preset")
		os.Exit(1)
	}

	if argRenderBitDepth != 16 && argRenderBitDepth != 24 {
		slog.Error(fmt.Sprintf("Invalid bit depth %d, valid options: 16, 24", argRenderBitDepth))
		os.Exit(1)
	}

	sampleRate := config.SampleRate
	if argRenderSampleRate > 0 {
		sampleRate = argRenderSampleRate
	}

	catalog, err := util.LoadCatalog(config)
	if err != nil {
		slog.Error("Failed to load sound catalog: " + err.Error())
		os.Exit(1)
	}

	engine := audio.NewOfflineEngine(sampleRate, config.DefaultVolumeDb)
	defer engine.Close()

	if argRenderPreset != "" {
		loadRenderPreset(engine, catalog, argRenderPreset)
	} else {
		loadRenderSound(engine, catalog, argRenderSound)
	}

	if err := audio.RenderFile(engine, argRenderOut, argRenderSeconds, argRenderBitDepth); err != nil {
		slog.Error("Render failed: " + err.Error())
		os.Exit(1)
	}
}

// loadRenderSound puts a single catalog sound on the player channel at full
// fader, the mix headroom still applies.
func loadRenderSound(engine *audio.Engine, catalog []model.SoundDefinition, soundLabel string) {
	soundIndex := findSoundIndex(catalog, soundLabel)
	if soundIndex < 0 {
		slog.Error(fmt.Sprintf("Unknown sound '%s', see 'fox-ambience sounds' for the catalog", soundLabel))
		os.Exit(1)
	}

	if err := engine.Load(audio.PlayerChannel, catalog[soundIndex]); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	if err := engine.SetVolume(audio.PlayerChannel, audio.MaxVolumeDb); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func loadRenderPreset(engine *audio.Engine, catalog []model.SoundDefinition, presetName string) {
	preset, err := util.ReadPreset(presetName)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	for i, presetChannel := range preset.Channels {
		if i >= audio.MixerChannelCount {
			slog.Warn(fmt.Sprintf("Preset '%s' has more than %d channels, ignoring the rest", preset.Name, audio.MixerChannelCount))
			break
		}

		channelIndex := i + 1

		soundIndex := findSoundIndex(catalog, presetChannel.Sound)
		if soundIndex < 0 {
			slog.Error(fmt.Sprintf("Preset '%s' references unknown sound '%s'", preset.Name, presetChannel.Sound))
			os.Exit(1)
		}

		if err := engine.SetVolume(channelIndex, presetChannel.VolumeDb); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}

		if err := engine.SetMute(channelIndex, presetChannel.Muted); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}

		if err := engine.Load(channelIndex, catalog[soundIndex]); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
	}
}
