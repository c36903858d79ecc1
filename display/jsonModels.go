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
package display

type JsonStatus struct {
	MessageType string `json:"message_type"`

	Status string `json:"status"`
	View   string `json:"view"`

	Backend     string  `json:"backend"`
	Format      string  `json:"format"`
	PresetName  string  `json:"preset_name"`
	SessionTime float64 `json:"session_time"`
	ErrorCount  int     `json:"error_count"`

	AudioLoadPct int `json:"audio_load_pct"`
}

type JsonLog struct {
	MessageType string `json:"message_type"`

	Date    string `json:"date"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type JsonChannels struct {
	MessageType string `json:"message_type"`

	Channels []JsonChannel `json:"channels"`
}

type JsonChannel struct {
	Index    int     `json:"index"`
	Label    string  `json:"label"`
	Detail   string  `json:"detail"`
	Playing  bool    `json:"playing"`
	Loading  bool    `json:"loading"`
	Pending  bool    `json:"pending"`
	Muted    bool    `json:"muted"`
	VolumeDb float64 `json:"volume_db"`
}

type JsonTimer struct {
	MessageType string `json:"message_type"`

	State   string `json:"state"`
	Preset  int    `json:"preset"`
	Seconds int    `json:"seconds"`
}

type JsonLevels struct {
	MessageType string `json:"message_type"`

	Channels []JsonLevelChannel `json:"channels"`
}

type JsonLevelChannel struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Peak  int    `json:"peak"`
}
