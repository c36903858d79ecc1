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

import "fmt"

type SoundKind int

const (
	SoundTone SoundKind = iota
	SoundNoise
	SoundFile
)

func (k SoundKind) String() string {
	switch k {
	case SoundTone:
		return "tone"
	case SoundNoise:
		return "noise"
	case SoundFile:
		return "file"
	}

	return "unknown"
}

type NoiseColor int

const (
	NoiseWhite NoiseColor = iota
	NoisePink
	NoiseBrown

	// derived colors, approximated by filtering a base color
	NoiseGreen
	NoiseBath
)

var NoiseColorMap = map[string]NoiseColor{
	"white": NoiseWhite,
	"pink":  NoisePink,
	"brown": NoiseBrown,
	"green": NoiseGreen,
	"bath":  NoiseBath,
}

func (c NoiseColor) String() string {
	switch c {
	case NoiseWhite:
		return "white"
	case NoisePink:
		return "pink"
	case NoiseBrown:
		return "brown"
	case NoiseGreen:
		return "green"
	case NoiseBath:
		return "bath"
	}

	return "unknown"
}

// SoundDefinition describes how to produce one sound: a fixed frequency tone,
// a colored noise generator or a looping audio file. Definitions are immutable
// values selected from the catalog.
type SoundDefinition struct {
	Label string
	Kind  SoundKind

	// only used when Kind == SoundTone
	Frequency float64

	// only used when Kind == SoundNoise
	Color NoiseColor

	// only used when Kind == SoundFile
	Path string
}

// Detail returns a short human readable description of what the definition
// produces, used by the sound listing and the UI detail line.
func (def SoundDefinition) Detail() string {
	switch def.Kind {
	case SoundTone:
		return fmt.Sprintf("%g Hz sine", def.Frequency)
	case SoundNoise:
		return def.Color.String() + " noise"
	case SoundFile:
		return def.Path
	}

	return ""
}
