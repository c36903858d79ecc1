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

// Package reaper coordinates shutdown. Long running goroutines Register a name
// and call Done when they exit, components that need teardown add a Callback,
// and the main goroutine blocks in Wait until every registration is released.
package reaper

import (
	"log/slog"
	"slices"
	"sync"
)

var (
	lock sync.Mutex

	reapRequested       chan bool
	reaperCallbacks     []callback
	reaperRegistrations []string
	reaperWaitgroup     sync.WaitGroup
)

type callback struct {
	name         string
	callbackFunc func()
}

func init() {
	reapRequested = make(chan bool, 1)
	reaperCallbacks = make([]callback, 0)
	reaperRegistrations = make([]string, 0)
}

// Reaped reports whether shutdown has been requested. Loops poll this to know
// when to wind down.
func Reaped() bool {
	return len(reapRequested) > 0
}

// Reap requests shutdown and runs the registered callbacks in reverse order,
// so components tear down opposite to how they came up. Only the first call
// does anything.
func Reap() {
	lock.Lock()

	if len(reapRequested) > 0 {
		lock.Unlock()
		return
	}

	reapRequested <- true

	callbacksReversed := slices.Clone(reaperCallbacks)
	slices.Reverse(callbacksReversed)

	lock.Unlock()

	for _, callback := range callbacksReversed {
		slog.Info("reaper: calling reap callback for '" + callback.name + "'")
		callback.callbackFunc()
	}
}

// Callback adds a named teardown function to run during Reap.
func Callback(name string, callbackFunc func()) {
	lock.Lock()
	defer lock.Unlock()

	reaperCallbacks = append(reaperCallbacks, callback{
		name:         name,
		callbackFunc: callbackFunc,
	})
}

// Register adds a named goroutine that Wait blocks on until its Done call.
func Register(name string) {
	lock.Lock()
	defer lock.Unlock()

	if slices.Contains(reaperRegistrations, name) {
		slog.Warn("reaper: already registered '" + name + "'")
		return
	}

	reaperRegistrations = append(reaperRegistrations, name)
	reaperWaitgroup.Add(1)
	slog.Debug("reaper: registered '" + name + "'")
}

// Done releases a registration. Calling it for an unknown name logs instead of
// panicking the waitgroup.
func Done(name string) {
	lock.Lock()
	defer lock.Unlock()

	if !slices.Contains(reaperRegistrations, name) {
		slog.Warn("reaper: already done or doesn't exist: '" + name + "'")
		return
	}

	reaperRegistrations = slices.DeleteFunc(reaperRegistrations, func(test string) bool {
		return test == name
	})

	slog.Debug("reaper: done: '" + name + "'")
	reaperWaitgroup.Done()
}

// Wait blocks until every registered goroutine has called Done.
func Wait() {
	reaperWaitgroup.Wait()
}
