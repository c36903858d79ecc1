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
	"fmt"
	"log/slog"
	"os"

	"fox-ambience/util"

	"github.com/spf13/cobra"
)

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "List the sounds available in the catalog",

	Run: func(cmd *cobra.Command, args []string) {
		ConfigureTextLogger(slog.LevelWarn)

		config := util.ReadConfig(collectArgs())

		catalog, err := util.LoadCatalog(config)
		if err != nil {
			slog.Error("Failed to load sound catalog: " + err.Error())
			os.Exit(1)
		}

		fmt.Printf("%-18s %-7s %s\n", "LABEL", "KIND", "DETAIL")

		for _, definition := range catalog {
			fmt.Printf("%-18s %-7s %s\n", definition.Label, definition.Kind.String(), definition.Detail())
		}
	},
}
