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

type OutputType int

const (
	OutputTUI OutputType = iota
	OutputJSON
)

var OutputTypeMap = map[string]OutputType{
	"tui":  OutputTUI,
	"json": OutputJSON,
}

type CommandLineArgs struct {
	Simulate             bool
	SimulateFreezeMeters bool

	ConfigFile   string
	OutputType   string
	Backend      string
	PresetName   string
	SoundLabel   string
	TimerSeconds int
	Quiet        bool
}

type Config struct {
	Backend          string  `yaml:"backend,omitempty"`
	SampleRate       int     `yaml:"sample_rate,omitempty"`
	BufferMs         int     `yaml:"buffer_ms,omitempty"`
	DefaultVolumeDb  float64 `yaml:"default_volume_db,omitempty"`
	SoundsDirectory  string  `yaml:"sounds_directory,omitempty"`
	CatalogFile      string  `yaml:"catalog_file,omitempty"`
	LogLevel         int     `yaml:"log_level,omitempty"`
	JackClientName   string  `yaml:"jack_client_name,omitempty"`
	PlaybackPortName string  `yaml:"playback_port_name,omitempty"`

	OutputType OutputType `yaml:"output_type,omitempty"`

	// runtime values carried from the command line, not settable in yaml
	PresetName   string `yaml:"-"`
	SoundLabel   string `yaml:"-"`
	TimerSeconds int    `yaml:"-"`

	SimulationOptions *SimulationOptions `yaml:"simulation_options"`
}

type SimulationOptions struct {
	EnableSimulation bool `yaml:"enable,omitempty"`
	FreezeMeters     bool `yaml:"freeze_meters,omitempty"`
}
