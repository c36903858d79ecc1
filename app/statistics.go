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
	"math"
	"time"

	"fox-ambience/display"
	"fox-ambience/model"
	"fox-ambience/reaper"
	"fox-ambience/util"
)

var sessionStartTime time.Time

func initStatistics(config *model.Config) chan bool {
	shutdownChan := make(chan bool, 5)
	sessionStartTime = time.Now()

	simulated := config.SimulationOptions.EnableSimulation

	// channel strips, meters and the timer field
	processOnInterval("ui refresh", shutdownChan, 100, func() {
		channels := engineHandle.Status()

		displayHandle.ui.UpdateChannels(channels)
		displayHandle.ui.SetTimerStatus(sleepTimer.Status())
		displayHandle.ui.SetEngineStatus(transportStatus(channels))

		// the simulation loop owns the meters when it is running
		if !simulated {
			displayHandle.ui.UpdateSignalLevels(engineHandle.SignalLevels())
		}
	})

	// slower moving values plus the wake lock refcount
	processOnInterval("engine stats", shutdownChan, 1000, func() {
		engineStats := engineHandle.Stats()

		displayHandle.ui.SetBackendName(engineStats.BackendName)
		displayHandle.ui.SetAudioLoad(int(math.Round(engineStats.Load)))
		displayHandle.ui.SetSessionTime(time.Since(sessionStartTime).Seconds())

		util.TraceLog(fmt.Sprintf("engine load: %0.2f%%, blocks rendered: %d", engineStats.Load, engineStats.BlockCount))

		if engineHandle.AnyPlaying() {
			wakeLock.Acquire()
		} else {
			wakeLock.Release()
		}
	})

	// the backend can silently stall when the host sleeps mid-session, the
	// watchdog keeps poking it back into pulling blocks
	processOnInterval("engine watchdog", shutdownChan, 5000, func() {
		if err := engineHandle.Resume(); err != nil {
			util.TraceLog("engine resume failed: " + err.Error())
		}
	})

	return shutdownChan
}

// transportStatus folds the per channel states into the single status icon
// shown at the top of the display.
func transportStatus(channels []model.ChannelStatus) display.Status {
	if reaper.Reaped() {
		return display.StatusShuttingDown
	}

	if engineHandle.Failed() {
		return display.StatusFailed
	}

	anyPlaying := false

	for _, channel := range channels {
		if channel.Loading {
			return display.StatusLoading
		}

		if channel.Playing {
			anyPlaying = true
		}
	}

	if anyPlaying {
		return display.StatusPlaying
	}

	return display.StatusStopped
}

func processOnInterval(name string, shutdownChan chan bool, milliseconds int, process func()) {
	reaper.Register(name)

	go func() {
		process()

		t := time.NewTicker(time.Duration(milliseconds) * time.Millisecond)

		for range t.C {
			if len(shutdownChan) > 0 {
				break
			}

			process()
		}

		reaper.Done(name)
	}()
}
