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

// Preset is a saved mixer scene: up to four channel slots, each naming a
// catalog sound with its own volume and mute state. Presets are read from
// yaml files and applied once on startup.
type Preset struct {
	Name     string          `yaml:"name"`
	Channels []PresetChannel `yaml:"channels"`
}

type PresetChannel struct {
	Sound    string  `yaml:"sound"`
	VolumeDb float64 `yaml:"volume_db"`
	Muted    bool    `yaml:"muted,omitempty"`
}
