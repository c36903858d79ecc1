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
package custom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaderDBEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, FaderDB(0, 20, -40, 0))
	assert.Equal(t, -40.0, FaderDB(19, 20, -40, 0))

	// middle of the range
	assert.InDelta(t, -20.0, FaderDB(10, 21, -40, 0), 1e-9)
}

func TestFaderDBClampsOutOfRangeRows(t *testing.T) {
	assert.Equal(t, 0.0, FaderDB(-5, 20, -40, 0))
	assert.Equal(t, -40.0, FaderDB(25, 20, -40, 0))
}

func TestFaderDBDegenerateHeight(t *testing.T) {
	assert.Equal(t, 0.0, FaderDB(0, 1, -40, 0))
	assert.Equal(t, 0.0, FaderDB(3, 0, -40, 0))
}

func TestFaderRowEndpoints(t *testing.T) {
	assert.Equal(t, 0, FaderRow(0, 20, -40, 0))
	assert.Equal(t, 19, FaderRow(-40, 20, -40, 0))
}

func TestFaderRowClampsOutOfRangeVolume(t *testing.T) {
	assert.Equal(t, 0, FaderRow(6, 20, -40, 0))
	assert.Equal(t, 19, FaderRow(-80, 20, -40, 0))
}

func TestFaderRowIsMonotonic(t *testing.T) {
	previous := -1

	for volume := 0.0; volume >= -40.0; volume -= 0.5 {
		row := FaderRow(volume, 20, -40, 0)

		assert.GreaterOrEqual(t, row, previous)
		previous = row
	}
}

func TestFaderRoundTrip(t *testing.T) {
	// every drawable row maps back onto itself
	for row := 0; row < 20; row++ {
		volume := FaderDB(row, 20, -40, 0)
		assert.Equal(t, row, FaderRow(volume, 20, -40, 0), "row %d", row)
	}
}

func TestStripMeterStepDb(t *testing.T) {
	assert.Equal(t, 0, stripMeterStepDb(0, 16))
	assert.Equal(t, stripMeterFloorDb, stripMeterStepDb(15, 16))

	// thresholds fall as the rows descend
	previous := 1
	for row := 0; row < 16; row++ {
		step := stripMeterStepDb(row, 16)
		assert.Less(t, step, previous, "row %d", row)
		previous = step
	}
}
