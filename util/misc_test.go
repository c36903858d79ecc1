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
package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimer(t *testing.T) {
	assert.Equal(t, "00:00", FormatTimer(0))
	assert.Equal(t, "00:59", FormatTimer(59))
	assert.Equal(t, "05:00", FormatTimer(300))
	assert.Equal(t, "15:00", FormatTimer(900))
	assert.Equal(t, "59:59", FormatTimer(3599))
	assert.Equal(t, "1:00:00", FormatTimer(3600))
	assert.Equal(t, "2:05:09", FormatTimer(2*3600+5*60+9))

	// negative input never renders a negative clock
	assert.Equal(t, "00:00", FormatTimer(-10))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00.000", FormatDuration(0))
	assert.Equal(t, "00:00:01.500", FormatDuration(1.5))
	assert.Equal(t, "00:01:30.250", FormatDuration(90.25))
	assert.Equal(t, "01:01:01.500", FormatDuration(3661.5))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "500.00 B", FormatSize(500))
	assert.Equal(t, "2.00 KiB", FormatSize(2048))
	assert.Equal(t, "1.00 MiB", FormatSize(1024*1024))
}

func TestFileExists(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "present.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(directory, "absent.txt")))

	// a directory is not a file
	assert.False(t, FileExists(directory))
}

func TestDirectoryExists(t *testing.T) {
	directory := t.TempDir()

	assert.True(t, DirectoryExists(directory))
	assert.False(t, DirectoryExists(filepath.Join(directory, "missing")))
}

func TestResolveHomeDirPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	resolved, err := ResolveHomeDirPath("~/sounds/rain.wav")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sounds/rain.wav"), resolved)

	// anything else passes through unchanged
	resolved, err = ResolveHomeDirPath("/etc/fox/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/fox/config.yml", resolved)
}
