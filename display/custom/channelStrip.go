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
	"math"
	"sync"

	"fox-ambience/display/theme"
	"fox-ambience/model"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

const (
	stripHeaderRows = 3
	stripFooterRows = 1

	// dB range drawn by the strip's meter column
	stripMeterFloorDb = -60
)

// ChannelStrip is one mixer channel: label, transport state, a vertical
// volume fader and a signal meter. The fader responds to clicks, drags and
// the scroll wheel, keyboard control goes through the owning view.
type ChannelStrip struct {
	*cview.Box

	channelLabel string
	soundLabel   string

	playing  bool
	loading  bool
	pending  bool
	muted    bool
	selected bool

	volumeDb float64
	minDb    float64
	maxDb    float64

	level     int
	peakLevel int

	dragging bool

	selectedFunc func()
	toggleFunc   func()
	volumeFunc   func(volumeDb float64)
	adjustFunc   func(deltaDb float64)

	sync.RWMutex
}

func NewChannelStrip(channelLabel string, minDb float64, maxDb float64) *ChannelStrip {
	p := &ChannelStrip{
		Box:          cview.NewBox(),
		channelLabel: channelLabel,
		minDb:        minDb,
		maxDb:        maxDb,
		volumeDb:     maxDb,
		level:        stripMeterFloorDb,
		peakLevel:    stripMeterFloorDb,
	}
	p.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)
	return p
}

// SetSelectedFunc sets the callback fired when the strip is clicked.
func (p *ChannelStrip) SetSelectedFunc(handler func()) {
	p.Lock()
	defer p.Unlock()

	p.selectedFunc = handler
}

// SetToggleFunc sets the callback fired on double click to start or stop the
// channel.
func (p *ChannelStrip) SetToggleFunc(handler func()) {
	p.Lock()
	defer p.Unlock()

	p.toggleFunc = handler
}

// SetVolumeFunc sets the callback fired when the fader is clicked or dragged
// to a new position.
func (p *ChannelStrip) SetVolumeFunc(handler func(volumeDb float64)) {
	p.Lock()
	defer p.Unlock()

	p.volumeFunc = handler
}

// SetAdjustFunc sets the callback fired by the scroll wheel.
func (p *ChannelStrip) SetAdjustFunc(handler func(deltaDb float64)) {
	p.Lock()
	defer p.Unlock()

	p.adjustFunc = handler
}

// Update applies a channel snapshot to the strip.
func (p *ChannelStrip) Update(status model.ChannelStatus) {
	p.Lock()
	defer p.Unlock()

	p.soundLabel = status.Label
	p.playing = status.Playing
	p.loading = status.Loading
	p.pending = status.Pending
	p.muted = status.Muted
	p.volumeDb = status.VolumeDb
}

func (p *ChannelStrip) SetLevel(level int, peakLevel int) {
	p.Lock()
	defer p.Unlock()

	p.level = level
	p.peakLevel = peakLevel
}

func (p *ChannelStrip) SetSelected(selected bool) {
	p.Lock()
	defer p.Unlock()

	p.selected = selected
}

func (p *ChannelStrip) GetSelected() bool {
	p.RLock()
	defer p.RUnlock()

	return p.selected
}

// FaderDB maps a fader row onto its decibel value, row zero is the top of
// the fader. The mapping is linear across the bounded range.
func FaderDB(row int, rows int, minDb float64, maxDb float64) float64 {
	if rows <= 1 {
		return maxDb
	}

	if row < 0 {
		row = 0
	} else if row >= rows {
		row = rows - 1
	}

	return maxDb - (maxDb-minDb)*float64(row)/float64(rows-1)
}

// FaderRow maps a decibel value onto the nearest fader row.
func FaderRow(volumeDb float64, rows int, minDb float64, maxDb float64) int {
	if rows <= 1 || maxDb <= minDb {
		return 0
	}

	position := (maxDb - volumeDb) / (maxDb - minDb)
	row := int(math.Round(position * float64(rows-1)))

	if row < 0 {
		row = 0
	} else if row >= rows {
		row = rows - 1
	}

	return row
}

// Draw draws this primitive onto the screen.
func (p *ChannelStrip) Draw(screen tcell.Screen) {
	if !p.GetVisible() {
		return
	}

	p.Box.Draw(screen)

	p.Lock()
	defer p.Unlock()

	x, y, width, height := p.GetInnerRect()
	rows := height - stripHeaderRows - stripFooterRows

	if width < 7 || rows < 2 {
		return
	}

	background := p.GetBackgroundColor()

	labelStyle := tcell.StyleDefault.Bold(true).Background(background)
	if p.selected {
		labelStyle = labelStyle.Foreground(theme.StripSelectedColor)
	}
	p.drawCentered(screen, x, y, width, p.channelLabel, labelStyle)

	soundLabel := p.soundLabel
	if soundLabel == "" {
		soundLabel = "(empty)"
	}
	soundStyle := tcell.StyleDefault.Background(background).Dim(p.pending || p.soundLabel == "")
	p.drawCentered(screen, x, y+1, width, soundLabel, soundStyle)

	stateRunes, stateStyle := p.stateIndicator(background)
	p.drawCentered(screen, x, y+2, width, stateRunes, stateStyle)

	p.drawFader(screen, x, y+stripHeaderRows, rows, background)
	p.drawMeter(screen, x+width-3, y+stripHeaderRows, rows, background)

	volumeText := fmt.Sprintf("%+.0f dB", p.volumeDb)
	volumeStyle := tcell.StyleDefault.Background(background)
	if p.muted {
		volumeText = "MUTED"
		volumeStyle = volumeStyle.Foreground(theme.Red)
	}
	p.drawCentered(screen, x, y+height-1, width, volumeText, volumeStyle)
}

// MouseHandler returns the mouse handler for this primitive.
func (p *ChannelStrip) MouseHandler() func(action cview.MouseAction, event *tcell.EventMouse, setFocus func(p cview.Primitive)) (consumed bool, capture cview.Primitive) {
	return p.WrapMouseHandler(func(action cview.MouseAction, event *tcell.EventMouse, setFocus func(p cview.Primitive)) (bool, cview.Primitive) {
		mouseX, mouseY := event.Position()

		if !p.InRect(mouseX, mouseY) && !p.isDragging() {
			return false, nil
		}

		switch action {
		case cview.MouseLeftDown:
			p.fireSelected()
			p.beginDrag(mouseY)
			return true, p

		case cview.MouseMove:
			if p.isDragging() {
				p.dragTo(mouseY)
				return true, p
			}

		case cview.MouseLeftUp:
			p.endDrag()
			return true, nil

		case cview.MouseLeftDoubleClick:
			p.fireToggle()
			return true, nil

		case cview.MouseScrollUp:
			p.fireAdjust(1)
			return true, nil

		case cview.MouseScrollDown:
			p.fireAdjust(-1)
			return true, nil
		}

		return false, nil
	})
}

//
// private functions
//

func (p *ChannelStrip) drawCentered(screen tcell.Screen, x int, y int, width int, text string, style tcell.Style) {
	runes := []rune(text)

	if len(runes) > width {
		runes = runes[:width]
	}

	offset := (width - len(runes)) / 2

	for w := 0; w < width; w++ {
		content := ' '
		if w >= offset && w-offset < len(runes) {
			content = runes[w-offset]
		}

		screen.SetContent(x+w, y, content, nil, style)
	}
}

func (p *ChannelStrip) stateIndicator(background tcell.Color) (string, tcell.Style) {
	style := tcell.StyleDefault.Background(background)

	var state string

	switch {
	case p.loading:
		state = string(theme.RuneClock)
		style = style.Foreground(theme.Yellow)
	case p.playing:
		state = string(theme.RunePlay)
		style = style.Foreground(theme.Green)
	case p.pending:
		state = string(theme.RuneNote)
		style = style.Foreground(theme.Gray)
	default:
		state = string(theme.RuneStop)
		style = style.Foreground(theme.Gray)
	}

	if p.muted {
		state += " " + string(theme.RuneMuted)
		style = style.Foreground(theme.Red)
	}

	return state, style
}

func (p *ChannelStrip) drawFader(screen tcell.Screen, x int, top int, rows int, background tcell.Color) {
	knobRow := FaderRow(p.volumeDb, rows, p.minDb, p.maxDb)

	trackStyle := tcell.StyleDefault.Foreground(theme.FaderTrackColor).Background(background)
	knobStyle := tcell.StyleDefault.Foreground(theme.SoftGreen).Background(background)

	if p.muted {
		knobStyle = knobStyle.Foreground(theme.StripInactiveFillColor)
	}

	for row := 0; row < rows; row++ {
		if row == knobRow {
			screen.SetContent(x+1, top+row, theme.RuneFaderKnob, nil, knobStyle)
			screen.SetContent(x+2, top+row, theme.RuneFaderKnob, nil, knobStyle)
		} else {
			screen.SetContent(x+1, top+row, theme.RuneFaderTrack, nil, trackStyle)
			screen.SetContent(x+2, top+row, ' ', nil, trackStyle)
		}
	}
}

func (p *ChannelStrip) drawMeter(screen tcell.Screen, x int, top int, rows int, background tcell.Color) {
	for row := 0; row < rows; row++ {
		stepDb := stripMeterStepDb(row, rows)

		style := tcell.StyleDefault.Background(background)

		switch {
		case stepDb >= -2:
			style = style.Foreground(theme.Red)
		case stepDb >= -8:
			style = style.Foreground(theme.Yellow)
		default:
			style = style.Foreground(theme.Green)
		}

		if !p.playing {
			style = style.Foreground(theme.StripInactiveFillColor)
		}

		if p.level >= stepDb {
			screen.SetContent(x, top+row, rune(9607), nil, style)
		} else if p.peakLevel >= stepDb && (row == 0 || p.peakLevel < stripMeterStepDb(row-1, rows)) {
			screen.SetContent(x, top+row, rune(9607), nil, style.Bold(true))
		} else {
			screen.SetContent(x, top+row, rune(9617), nil, style.Dim(true))
		}
	}
}

// stripMeterStepDb maps a meter row onto its threshold level, row zero is the
// top of the meter at 0 dBFS.
func stripMeterStepDb(row int, rows int) int {
	if rows <= 1 {
		return 0
	}

	return stripMeterFloorDb * row / (rows - 1)
}

func (p *ChannelStrip) isDragging() bool {
	p.RLock()
	defer p.RUnlock()

	return p.dragging
}

func (p *ChannelStrip) beginDrag(mouseY int) {
	p.Lock()
	p.dragging = true
	p.Unlock()

	p.dragTo(mouseY)
}

func (p *ChannelStrip) endDrag() {
	p.Lock()
	p.dragging = false
	p.Unlock()
}

// dragTo converts a mouse row into a fader position and fires the volume
// callback outside the lock.
func (p *ChannelStrip) dragTo(mouseY int) {
	p.RLock()

	_, y, _, height := p.GetInnerRect()
	rows := height - stripHeaderRows - stripFooterRows

	handler := p.volumeFunc
	volumeDb := FaderDB(mouseY-(y+stripHeaderRows), rows, p.minDb, p.maxDb)

	p.RUnlock()

	if rows >= 2 && handler != nil {
		handler(volumeDb)
	}
}

func (p *ChannelStrip) fireSelected() {
	p.RLock()
	handler := p.selectedFunc
	p.RUnlock()

	if handler != nil {
		handler()
	}
}

func (p *ChannelStrip) fireToggle() {
	p.RLock()
	handler := p.toggleFunc
	p.RUnlock()

	if handler != nil {
		handler()
	}
}

func (p *ChannelStrip) fireAdjust(deltaDb float64) {
	p.RLock()
	handler := p.adjustFunc
	p.RUnlock()

	if handler != nil {
		handler(deltaDb)
	}
}
