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

// StatusText is a one line "Label: value" row for the status pane. The label
// is fixed at construction, the value side is rewritten as the player runs.
type StatusText struct {
	grid      *cview.Grid
	labelView *cview.TextView
	valueView *cview.TextView
}

func NewStatusTextField(labelWidth int, label string, initialValue string) *StatusText {
	field := StatusText{
		grid: cview.NewGrid(),
	}

	field.grid.SetPadding(0, 0, 0, 0)
	field.grid.SetColumns(labelWidth, -1)
	field.grid.SetRows(1)

	field.labelView = cview.NewTextView()
	field.labelView.SetTextAlign(cview.AlignRight)
	field.labelView.Write([]byte(fmt.Sprintf("%s: ", label)))
	field.grid.AddItem(field.labelView, 0, 0, 1, 1, 0, 0, false)

	field.valueView = cview.NewTextView()
	field.grid.AddItem(field.valueView, 0, 1, 1, 1, 0, 0, false)

	field.SetCurrentValue(initialValue)

	return &field
}

func (field *StatusText) SetCurrentValue(value string) {
	field.valueView.Clear()
	field.valueView.Write([]byte(value))
}

func (field *StatusText) SetColor(color tcell.Color) {
	field.valueView.SetTextColor(color)
}

func (field *StatusText) GetGrid() *cview.Grid {
	return field.grid
}
