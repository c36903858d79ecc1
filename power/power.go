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

// Package power keeps the machine awake while audio is playing by holding a
// platform sleep inhibitor process. A missing inhibitor is never an error,
// playback simply will not prevent the system from sleeping.
package power

import (
	"io"
	"log/slog"
	"os/exec"
	"runtime"
	"sync"
)

type WakeLock struct {
	lock sync.Mutex

	cmd   *exec.Cmd
	stdin io.WriteCloser
}

func NewWakeLock() *WakeLock {
	return &WakeLock{}
}

// Acquire starts the inhibitor. Calling it while the lock is already held
// does nothing.
func (w *WakeLock) Acquire() {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.cmd != nil {
		return
	}

	name, args := detectInhibitor()

	if name == "" {
		slog.Debug("No sleep inhibitor available on this platform")
		return
	}

	cmd := exec.Command(name, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		slog.Debug("Failed to prepare sleep inhibitor: " + err.Error())
		return
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		slog.Debug("Failed to start sleep inhibitor: " + err.Error())
		return
	}

	w.cmd = cmd
	w.stdin = stdin

	slog.Debug("Sleep inhibitor started: " + name)
}

// Release stops the inhibitor if one is held.
func (w *WakeLock) Release() {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.cmd == nil {
		return
	}

	// closing stdin lets an inhibited child exit on its own, the kill covers
	// inhibitors that ignore stdin
	w.stdin.Close()
	w.cmd.Process.Kill()
	w.cmd.Wait()

	w.cmd = nil
	w.stdin = nil

	slog.Debug("Sleep inhibitor released")
}

func (w *WakeLock) Held() bool {
	w.lock.Lock()
	defer w.lock.Unlock()

	return w.cmd != nil
}

// detectInhibitor returns the inhibitor command and arguments for the current
// platform, or an empty name when none is available.
func detectInhibitor() (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		if path, err := exec.LookPath("caffeinate"); err == nil {
			// -d prevents display sleep, -i prevents idle sleep
			return path, []string{"-di"}
		}

	case "linux":
		if path, err := exec.LookPath("systemd-inhibit"); err == nil {
			// cat exits when our stdin pipe closes, releasing the inhibit
			return path, []string{"--what=idle", "--who=fox-ambience", "--why=Audio playback", "--mode=block", "cat"}
		}
	}

	return "", nil
}
