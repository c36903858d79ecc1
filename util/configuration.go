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
package util

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"fox-ambience/model"
)

var validBackends = []string{"auto", "oto", "jack", "none"}

func ReadConfig(args *model.CommandLineArgs) *model.Config {
	outputTypes := make([]string, len(model.OutputTypeMap))

	i := 0
	for key := range model.OutputTypeMap {
		outputTypes[i] = strings.ToLower(key)
		i++
	}

	if !slices.Contains(outputTypes, strings.ToLower(args.OutputType)) {
		slog.Error("Invalid output type specified: " + args.OutputType + ". Valid options: " + strings.Join(outputTypes, ", "))
		os.Exit(1)
	}

	config := &model.Config{
		Backend:          "auto",
		SampleRate:       48000,
		BufferMs:         100,
		DefaultVolumeDb:  -12.0,
		SoundsDirectory:  "~/.local/share/fox-ambience/sounds",
		CatalogFile:      "",
		LogLevel:         int(slog.LevelInfo),
		JackClientName:   "fox-ambience",
		PlaybackPortName: "system:playback_1,system:playback_2",
		OutputType:       model.OutputTUI,
		SimulationOptions: &model.SimulationOptions{
			EnableSimulation: false,
			FreezeMeters:     false,
		},
	}

	ReadYamlFile(config, args.ConfigFile)

	requestedOutputType := model.OutputTypeMap[args.OutputType]
	if requestedOutputType != config.OutputType {
		config.OutputType = requestedOutputType
	}

	if args.Backend != "" && args.Backend != config.Backend {
		config.Backend = args.Backend
	}

	if args.PresetName != "" {
		config.PresetName = args.PresetName
	}

	if args.SoundLabel != "" {
		config.SoundLabel = args.SoundLabel
	}

	if args.TimerSeconds > 0 {
		config.TimerSeconds = args.TimerSeconds
	}

	if args.Quiet {
		config.LogLevel = int(slog.LevelWarn)
	}

	if args.Simulate != config.SimulationOptions.EnableSimulation {
		config.SimulationOptions.EnableSimulation = args.Simulate
	}

	if args.SimulateFreezeMeters != config.SimulationOptions.FreezeMeters {
		config.SimulationOptions.FreezeMeters = args.SimulateFreezeMeters
	}

	if !slices.Contains(validBackends, strings.ToLower(config.Backend)) {
		slog.Error("Invalid audio backend specified: " + config.Backend + ". Valid options: " + strings.Join(validBackends, ", "))
		os.Exit(1)
	}

	if config.SampleRate <= 0 {
		slog.Error(fmt.Sprintf("Invalid sample rate specified: %d", config.SampleRate))
		os.Exit(1)
	}

	if config.BufferMs <= 0 {
		config.BufferMs = 100
	}

	if resolved, err := ResolveHomeDirPath(config.SoundsDirectory); err == nil {
		config.SoundsDirectory = resolved
	}

	return config
}

// ReadPreset loads a named mixer preset. The name is resolved the same way
// config files are, with a .preset suffix appended when missing.
func ReadPreset(presetName string) (*model.Preset, error) {
	presetPath := presetName

	if !strings.HasSuffix(presetPath, ".preset") {
		presetPath += ".preset"
	}

	preset := &model.Preset{}

	if err := ReadYamlFile(preset, presetPath); err != nil {
		return nil, fmt.Errorf("failed to read preset '%s': %w", presetName, err)
	}

	if preset.Name == "" {
		preset.Name = strings.TrimSuffix(presetName, ".preset")
	}

	return preset, nil
}

// LoadCatalog builds the playable sound list: the built in catalog, overlaid
// with entries from the configured catalog file, with relative file paths
// resolved against the sounds directory.
func LoadCatalog(config *model.Config) ([]model.SoundDefinition, error) {
	catalog := model.BuiltinCatalog()

	if config.CatalogFile != "" {
		var userEntries []model.CatalogEntry

		if err := ReadYamlFile(&userEntries, config.CatalogFile); err != nil {
			return nil, fmt.Errorf("failed to read catalog file '%s': %w", config.CatalogFile, err)
		}

		definitions := make([]model.SoundDefinition, 0, len(userEntries))

		for _, entry := range userEntries {
			definition, err := entry.Definition()
			if err != nil {
				return nil, err
			}

			definitions = append(definitions, definition)
		}

		catalog = model.MergeCatalog(catalog, definitions)
	}

	model.ResolveSoundPaths(catalog, config.SoundsDirectory)

	return catalog, nil
}
