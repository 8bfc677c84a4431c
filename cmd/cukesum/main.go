// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"os"

	"github.com/bartekus/cukesum/cmd/cukesum/commands"
	"github.com/bartekus/cukesum/cmd/cukesum/internal/clierr"
	"github.com/bartekus/cukesum/internal/console"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		if !clierr.IsReported(err) {
			console.New(os.Stdout, os.Stderr).Error("%v", err)
		}
		os.Exit(clierr.ExitCodeOf(err))
	}
}
