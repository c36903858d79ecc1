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
	"fox-ambience/display/theme"
	"fox-ambience/model"
	"fox-ambience/util"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

// TimerField shows the sleep timer on the player view: state icon, the
// current count and the selected preset.
type TimerField struct {
	grid       *cview.Grid
	stateView  *cview.TextView
	timeView   *cview.TextView
	presetView *cview.TextView
}

func NewTimerField(stateWidth int, presetWidth int) *TimerField {
	field := TimerField{
		grid: cview.NewGrid(),
	}

	field.grid.SetPadding(0, 0, 0, 0)
	field.grid.SetColumns(stateWidth, -1, presetWidth)
	field.grid.SetRows(1)

	field.stateView = cview.NewTextView()
	field.stateView.SetTextAlign(cview.AlignRight)
	field.grid.AddItem(field.stateView, 0, 0, 1, 1, 0, 0, false)

	field.timeView = cview.NewTextView()
	field.timeView.SetPadding(0, 0, 2, 2)
	field.grid.AddItem(field.timeView, 0, 1, 1, 1, 0, 0, false)

	field.presetView = cview.NewTextView()
	field.presetView.SetTextAlign(cview.AlignRight)
	field.grid.AddItem(field.presetView, 0, 2, 1, 1, 0, 0, false)

	field.SetStatus(model.TimerStatus{})

	return &field
}

func (field *TimerField) SetStatus(status model.TimerStatus) {
	var icon rune
	var color tcell.Color

	switch status.State {
	case model.TimerCountingDown:
		icon = theme.RuneClock
		color = theme.Yellow
	case model.TimerCountingUp:
		icon = theme.RunePlay
		color = theme.SoftGreen
	default:
		icon = theme.RuneStop
		color = theme.Gray
	}

	field.stateView.Clear()
	field.stateView.Write([]byte(string(icon) + " Timer: "))

	field.timeView.Clear()
	field.timeView.SetTextColor(color)
	field.timeView.Write([]byte(util.FormatTimer(status.Seconds)))

	field.presetView.Clear()
	if status.Preset > 0 {
		field.presetView.Write([]byte("preset " + util.FormatTimer(status.Preset)))
	} else {
		field.presetView.Write([]byte("no preset"))
	}
}

func (field *TimerField) GetGrid() *cview.Grid {
	return field.grid
}
