// Package commands holds the tidyfs subcommands. Each one opens its
// own run log, performs a single pass, prints a summary, and exits.
package commands

import (
	"github.com/pterm/pterm"
	"github.com/walteh/tidyfs/pkg/fsrename"
)

// 📊 printWalkSummary renders a rename walk result for the operator
func printWalkSummary(result *fsrename.Result, logPath string) {
	if result.Failed > 0 {
		pterm.Warning.Printfln("renamed %d, unchanged %d, skipped %d, failed %d",
			result.Renamed, result.Unchanged, result.Skipped, result.Failed)
	} else {
		pterm.Success.Printfln("renamed %d, unchanged %d, skipped %d",
			result.Renamed, result.Unchanged, result.Skipped)
	}
	pterm.Info.Printfln("run log: %s", logPath)
}
