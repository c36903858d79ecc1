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
	"math/rand/v2"
	"time"

	"fox-ambience/audio"
	"fox-ambience/model"
	"fox-ambience/reaper"
)

// startSimulation animates the level meters with random values so the display
// can be worked on without an audio device. The engine still runs, it just
// renders into the null backend.
func startSimulation(simulationOptions *model.SimulationOptions) {
	reaper.Register("simulation")

	go func() {
		t := time.NewTicker(150 * time.Millisecond)
		levels := make([]model.SignalLevel, audio.ChannelCount)

		for range t.C {
			if reaper.Reaped() {
				break
			}

			for channel := range levels {
				newLevel := rand.IntN(70) * (-1)

				levels[channel] = model.SignalLevel{
					Instant: newLevel,
					Peak:    newLevel + rand.IntN(6),
				}
			}

			// Queue draw
			displayHandle.ui.UpdateSignalLevels(levels)

			if simulationOptions.FreezeMeters {
				break
			}
		}

		reaper.Done("simulation")
	}()
}
