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

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonUIShutdownIsObservable(t *testing.T) {
	output, err := os.Create(filepath.Join(t.TempDir(), "ui.json"))
	require.NoError(t, err)
	defer output.Close()

	ui := NewJsonUI(output)
	assert.False(t, ui.IsShutdown())

	ui.Shutdown()

	// a returning waiter must not swallow the signal, the print loop still
	// has to see it on its next pass
	ui.WaitForShutdown()
	assert.True(t, ui.IsShutdown())

	// repeated shutdown is harmless
	ui.Shutdown()
	assert.True(t, ui.IsShutdown())
}
