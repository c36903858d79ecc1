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
package audio

// Source produces the mono sample stream for one channel. Implementations are
// not safe for concurrent use, the engine calls Next from the render goroutine
// only and guarantees Close is never called while a render is in flight.
type Source interface {
	// Next returns the next sample in the range [-1, 1]
	Next() float32

	// Describe returns a short human readable descriptor, for example
	// "tone@528Hz" or "noise:pink"
	Describe() string

	// Close releases any resources held by the source
	Close()
}
