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
package app

import (
	"os"

	"fox-ambience/model"
	"fox-ambience/util"

	"github.com/spf13/cobra"
)

var (
	// arguments
	argSimulate             bool
	argSimulateFreezeMeters bool

	argConfigFile   string
	argOutputType   string
	argJsonOutput   bool
	argBackend      string
	argPresetName   string
	argSoundLabel   string
	argTimerSeconds int
	argQuiet        bool

	rootCmd = &cobra.Command{
		Use:   "fox-ambience",
		Short: "Play relaxing tones, colored noise and looping soundscapes",

		Run: func(cmd *cobra.Command, args []string) {
			config := util.ReadConfig(collectArgs())

			runEngine(config)
		},
	}
)

func init() {
	// ui test commands
	rootCmd.Flags().BoolVar(&argSimulate, "simulate", false, "Animate the meters with random levels instead of real audio")
	rootCmd.Flags().BoolVar(&argSimulateFreezeMeters, "simulate-freeze-meters", false, "Freeze the meters (don't randomly set level)")

	rootCmd.PersistentFlags().StringVarP(&argConfigFile, "config", "c", "fox-ambience.yml", "Name or path of the config file to load")
	rootCmd.PersistentFlags().BoolVarP(&argQuiet, "quiet", "q", false, "Only log warnings and errors")

	rootCmd.Flags().StringVarP(&argOutputType, "output", "o", "tui", "Output type to use, valid options: tui, json")
	rootCmd.Flags().BoolVar(&argJsonOutput, "json", false, "Shorthand for --output json")
	rootCmd.Flags().StringVarP(&argBackend, "backend", "b", "", "Audio backend to use, valid options: auto, oto, jack, none")
	rootCmd.Flags().StringVarP(&argPresetName, "preset", "p", "", "Name or path of a mixer preset to apply on startup")
	rootCmd.Flags().StringVarP(&argSoundLabel, "sound", "s", "", "Catalog sound to start playing immediately")
	rootCmd.Flags().IntVarP(&argTimerSeconds, "duration", "d", 0, "Auto-stop countdown in seconds, starts with playback")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(soundsCmd)
}

func collectArgs() *model.CommandLineArgs {
	outputType := argOutputType

	if argJsonOutput {
		outputType = "json"
	}

	return &model.CommandLineArgs{
		Simulate:             argSimulate,
		SimulateFreezeMeters: argSimulateFreezeMeters,

		ConfigFile:   argConfigFile,
		OutputType:   outputType,
		Backend:      argBackend,
		PresetName:   argPresetName,
		SoundLabel:   argSoundLabel,
		TimerSeconds: argTimerSeconds,
		Quiet:        argQuiet,
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
