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
package model

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// CatalogEntry is the yaml shape of one user supplied catalog sound. Entries
// from a catalog file are appended to (or, on label collision, replace) the
// built in catalog.
type CatalogEntry struct {
	Label     string  `yaml:"label"`
	Kind      string  `yaml:"kind"`
	Frequency float64 `yaml:"frequency,omitempty"`
	Color     string  `yaml:"color,omitempty"`
	Path      string  `yaml:"path,omitempty"`
}

// Definition validates and converts a yaml catalog entry.
func (entry CatalogEntry) Definition() (SoundDefinition, error) {
	def := SoundDefinition{Label: entry.Label}

	if entry.Label == "" {
		return def, errors.New("catalog entry is missing a label")
	}

	switch strings.ToLower(entry.Kind) {
	case "tone":
		if entry.Frequency <= 0 {
			return def, fmt.Errorf("catalog entry '%s' needs a positive frequency", entry.Label)
		}

		def.Kind = SoundTone
		def.Frequency = entry.Frequency

	case "noise":
		color, found := NoiseColorMap[strings.ToLower(entry.Color)]
		if !found {
			return def, fmt.Errorf("catalog entry '%s' has unknown noise color '%s'", entry.Label, entry.Color)
		}

		def.Kind = SoundNoise
		def.Color = color

	case "file":
		if entry.Path == "" {
			return def, fmt.Errorf("catalog entry '%s' needs a file path", entry.Label)
		}

		def.Kind = SoundFile
		def.Path = entry.Path

	default:
		return def, fmt.Errorf("catalog entry '%s' has unknown kind '%s'", entry.Label, entry.Kind)
	}

	return def, nil
}

// BuiltinCatalog returns the fixed sound catalog in display order: the
// solfeggio tone set, the noise colors and the bundled soundscape files.
// File paths are relative and resolved against the configured sounds
// directory at load time.
//
// "Bath Fill" and "Shower" intentionally resolve to the same derived noise
// approximation, they are redundant labels rather than distinct sounds.
func BuiltinCatalog() []SoundDefinition {
	return []SoundDefinition{
		{Label: "174 Hz", Kind: SoundTone, Frequency: 174},
		{Label: "285 Hz", Kind: SoundTone, Frequency: 285},
		{Label: "396 Hz", Kind: SoundTone, Frequency: 396},
		{Label: "417 Hz", Kind: SoundTone, Frequency: 417},
		{Label: "432 Hz", Kind: SoundTone, Frequency: 432},
		{Label: "528 Hz", Kind: SoundTone, Frequency: 528},
		{Label: "639 Hz", Kind: SoundTone, Frequency: 639},
		{Label: "741 Hz", Kind: SoundTone, Frequency: 741},
		{Label: "852 Hz", Kind: SoundTone, Frequency: 852},
		{Label: "963 Hz", Kind: SoundTone, Frequency: 963},

		{Label: "White Noise", Kind: SoundNoise, Color: NoiseWhite},
		{Label: "Pink Noise", Kind: SoundNoise, Color: NoisePink},
		{Label: "Brown Noise", Kind: SoundNoise, Color: NoiseBrown},
		{Label: "Green Noise", Kind: SoundNoise, Color: NoiseGreen},
		{Label: "Bath Fill", Kind: SoundNoise, Color: NoiseBath},
		{Label: "Shower", Kind: SoundNoise, Color: NoiseBath},

		{Label: "Rain", Kind: SoundFile, Path: "rain.wav"},
		{Label: "Ocean Waves", Kind: SoundFile, Path: "ocean.wav"},
		{Label: "Campfire", Kind: SoundFile, Path: "campfire.wav"},
		{Label: "Night Crickets", Kind: SoundFile, Path: "crickets.wav"},
	}
}

// MergeCatalog overlays user entries onto the base catalog. A user entry
// whose label matches an existing definition replaces it in place, anything
// else is appended in file order.
func MergeCatalog(base []SoundDefinition, entries []SoundDefinition) []SoundDefinition {
	merged := make([]SoundDefinition, len(base))
	copy(merged, base)

out:
	for _, entry := range entries {
		for i := range merged {
			if merged[i].Label == entry.Label {
				merged[i] = entry
				continue out
			}
		}

		merged = append(merged, entry)
	}

	return merged
}

// ResolveSoundPaths joins relative file paths onto the sounds directory.
// Absolute paths in user entries are left alone.
func ResolveSoundPaths(catalog []SoundDefinition, soundsDirectory string) {
	for i := range catalog {
		if catalog[i].Kind != SoundFile || path.IsAbs(catalog[i].Path) {
			continue
		}

		catalog[i].Path = path.Join(soundsDirectory, catalog[i].Path)
	}
}
