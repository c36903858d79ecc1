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
package theme

import (
	"github.com/gdamore/tcell/v2"
)

const (
	Blue         = tcell.ColorBlue
	BlueRGB      = "0000FF"
	Green        = tcell.Color71
	GreenRGB     = "5FAF5F"
	Pink         = tcell.Color131
	PinkRGB      = "AF5F5F"
	Red          = tcell.Color124
	RedRGB       = "AF0000"
	SoftGreen    = tcell.Color72
	SoftGreenRGB = "5FAF87"
	Yellow       = tcell.Color142
	YellowRGB    = "AFAF00"
	Gray         = tcell.ColorGray
	GrayRGB      = "808080"

	BorderColor = tcell.Color243

	StripAlternateBackgroundColor = tcell.Color233
	StripInactiveFillColor        = tcell.Color242
	StripSelectedColor            = tcell.Color110
	FaderTrackColor               = tcell.Color240
)

const (
	RuneClock       = rune(9201) // ⏱
	RunePause       = rune(9208) // ⏸
	RunePausePlay   = rune(9199) // ⏯
	RunePlay        = rune(9205) // ⏵  -- alternate: rune(9654)
	RuneSkipBack    = rune(9198) // ⏮
	RuneSkipForward = rune(9197) // ⏭
	RuneStop        = rune(9209) // ⏹  -- alternate: rune(9635)

	RuneFailed = rune(9932) // ⛌
	RuneNote   = rune(9834) // ♪
	RuneMuted  = rune(215)  // ×  -- alternate: 'M'

	RuneFaderKnob  = rune(9608) // █
	RuneFaderTrack = rune(9474) // │
)
