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

	"fox-ambience/model"
)

// Backend is one way of getting rendered blocks to an output device. Exactly
// one backend exists per engine and it pulls blocks through the fill callback
// from a single goroutine.
type Backend interface {
	// Start brings the device up and begins pulling blocks through fill
	Start(fill func([]float32)) error

	// Resume kicks a suspended device back into pulling, used after the
	// host returns from sleep. Harmless when already running.
	Resume() error

	Close() error
	Name() string
}

// NewBackend builds the backend named by the config. "auto" picks the
// portable device output, JACK is opt-in for users already running a server.
func NewBackend(config *model.Config) (Backend, error) {
	switch config.Backend {
	case "", "auto", "oto":
		return newOtoBackend(config), nil

	case "jack":
		return newJackBackend(config), nil

	case "none":
		return newNullBackend(config), nil
	}

	return nil, fmt.Errorf("unknown audio backend '%s'", config.Backend)
}
