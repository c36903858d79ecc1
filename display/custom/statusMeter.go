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
	"fmt"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

// StatusMeter is a one line labeled progress bar with a numeric readout,
// used by the status pane for the audio engine load.
type StatusMeter struct {
	unit      string
	grid      *cview.Grid
	labelView *cview.TextView
	barView   *cview.ProgressBar
	readout   *cview.TextView
}

func NewStatusMeter(labelWidth int, label string, initialValue int, unit string) *StatusMeter {
	meter := StatusMeter{
		grid: cview.NewGrid(),
		unit: unit,
	}

	meter.grid.SetPadding(0, 0, 0, 0)
	meter.grid.SetColumns(labelWidth, -1, 6)
	meter.grid.SetRows(1)

	meter.labelView = cview.NewTextView()
	meter.labelView.SetTextAlign(cview.AlignRight)
	meter.labelView.Write([]byte(fmt.Sprintf("%s: ", label)))
	meter.grid.AddItem(meter.labelView, 0, 0, 1, 1, 0, 0, false)

	meter.barView = cview.NewProgressBar()
	meter.barView.SetFilledRune(rune(9607))
	meter.barView.SetEmptyRune(rune(9617))
	meter.barView.SetEmptyColor(tcell.Color242)
	meter.grid.AddItem(meter.barView, 0, 1, 1, 1, 0, 0, false)

	meter.readout = cview.NewTextView()
	meter.readout.SetPadding(0, 0, 1, 0)
	meter.grid.AddItem(meter.readout, 0, 2, 1, 1, 0, 0, false)

	meter.SetCurrentValue(initialValue)

	return &meter
}

// SetCurrentValue updates the bar and the readout. Values are percentages,
// the progress bar clamps anything outside 0-100 on its own.
func (meter *StatusMeter) SetCurrentValue(value int) {
	meter.barView.SetProgress(value)

	meter.readout.Clear()
	meter.readout.Write([]byte(fmt.Sprintf("%d %s", value, meter.unit)))
}

// SetColor recolors the filled bar and the readout together, the caller uses
// this to shift the meter through ok/caution/warning colors.
func (meter *StatusMeter) SetColor(color tcell.Color) {
	meter.barView.SetFilledColor(color)
	meter.readout.SetTextColor(color)
}

func (meter *StatusMeter) GetGrid() *cview.Grid {
	return meter.grid
}
