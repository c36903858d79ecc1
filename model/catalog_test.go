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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogShape(t *testing.T) {
	catalog := BuiltinCatalog()

	require.Len(t, catalog, 20)

	// tones first, then noise, then files
	assert.Equal(t, "174 Hz", catalog[0].Label)
	assert.Equal(t, SoundTone, catalog[0].Kind)
	assert.Equal(t, "963 Hz", catalog[9].Label)
	assert.Equal(t, SoundNoise, catalog[10].Kind)
	assert.Equal(t, SoundFile, catalog[16].Kind)

	labels := map[string]bool{}
	for _, def := range catalog {
		assert.False(t, labels[def.Label], "duplicate label %s", def.Label)
		labels[def.Label] = true
	}
}

func TestBuiltinCatalogRedundantBathLabels(t *testing.T) {
	catalog := BuiltinCatalog()

	var bathFill, shower *SoundDefinition
	for i := range catalog {
		switch catalog[i].Label {
		case "Bath Fill":
			bathFill = &catalog[i]
		case "Shower":
			shower = &catalog[i]
		}
	}

	require.NotNil(t, bathFill)
	require.NotNil(t, shower)

	assert.Equal(t, NoiseBath, bathFill.Color)
	assert.Equal(t, NoiseBath, shower.Color)
}

func TestMergeCatalogReplacesOnLabelCollision(t *testing.T) {
	base := BuiltinCatalog()

	merged := MergeCatalog(base, []SoundDefinition{
		{Label: "Rain", Kind: SoundFile, Path: "/media/better-rain.wav"},
	})

	require.Len(t, merged, len(base))

	var rain *SoundDefinition
	for i := range merged {
		if merged[i].Label == "Rain" {
			rain = &merged[i]
		}
	}

	require.NotNil(t, rain)
	assert.Equal(t, "/media/better-rain.wav", rain.Path)

	// the base catalog is untouched
	for _, def := range base {
		if def.Label == "Rain" {
			assert.Equal(t, "rain.wav", def.Path)
		}
	}
}

func TestMergeCatalogAppendsNewEntries(t *testing.T) {
	base := BuiltinCatalog()

	merged := MergeCatalog(base, []SoundDefinition{
		{Label: "Thunder", Kind: SoundFile, Path: "thunder.wav"},
		{Label: "110 Hz", Kind: SoundTone, Frequency: 110},
	})

	require.Len(t, merged, len(base)+2)
	assert.Equal(t, "Thunder", merged[len(base)].Label)
	assert.Equal(t, "110 Hz", merged[len(base)+1].Label)
}

func TestResolveSoundPaths(t *testing.T) {
	catalog := []SoundDefinition{
		{Label: "Rain", Kind: SoundFile, Path: "rain.wav"},
		{Label: "Custom", Kind: SoundFile, Path: "/media/custom.wav"},
		{Label: "528 Hz", Kind: SoundTone, Frequency: 528},
	}

	ResolveSoundPaths(catalog, "/usr/share/fox-ambience/sounds")

	assert.Equal(t, "/usr/share/fox-ambience/sounds/rain.wav", catalog[0].Path)
	assert.Equal(t, "/media/custom.wav", catalog[1].Path)
	assert.Empty(t, catalog[2].Path)
}

func TestCatalogEntryDefinition(t *testing.T) {
	def, err := CatalogEntry{Label: "Low Hum", Kind: "tone", Frequency: 110}.Definition()
	require.NoError(t, err)
	assert.Equal(t, SoundTone, def.Kind)
	assert.Equal(t, 110.0, def.Frequency)

	def, err = CatalogEntry{Label: "Static", Kind: "Noise", Color: "White"}.Definition()
	require.NoError(t, err)
	assert.Equal(t, SoundNoise, def.Kind)
	assert.Equal(t, NoiseWhite, def.Color)

	def, err = CatalogEntry{Label: "Stream", Kind: "FILE", Path: "stream.wav"}.Definition()
	require.NoError(t, err)
	assert.Equal(t, SoundFile, def.Kind)
	assert.Equal(t, "stream.wav", def.Path)
}

func TestCatalogEntryDefinitionRejectsInvalidEntries(t *testing.T) {
	cases := []struct {
		name  string
		entry CatalogEntry
	}{
		{"missing label", CatalogEntry{Kind: "tone", Frequency: 440}},
		{"unknown kind", CatalogEntry{Label: "X", Kind: "sample"}},
		{"tone without frequency", CatalogEntry{Label: "X", Kind: "tone"}},
		{"tone negative frequency", CatalogEntry{Label: "X", Kind: "tone", Frequency: -5}},
		{"noise unknown color", CatalogEntry{Label: "X", Kind: "noise", Color: "purple"}},
		{"file without path", CatalogEntry{Label: "X", Kind: "file"}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := testCase.entry.Definition()
			assert.Error(t, err)
		})
	}
}
