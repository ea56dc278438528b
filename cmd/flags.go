/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"github.com/gnames/dwhetl/pkg/config"
	"github.com/spf13/cobra"
)

func setFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/dwhetl/config.yaml)")

	// Override version flag to use -V (consistent with other gn projects)
	cmd.Flags().BoolP("version", "V", false, "version for dwhetl")

	cmd.Flags().BoolP("plan", "p", false,
		"print statements of the run in execution order and exit")
	cmd.Flags().Bool("progress", false,
		"show progress bar")
	cmd.Flags().BoolP("check-sources", "c", false,
		"make sure S3 source data exists before loading")
}

// flagOptions converts explicitly set flags to config options.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option

	if cmd.Flags().Changed("plan") {
		b, _ := cmd.Flags().GetBool("plan")
		res = append(res, config.OptWithPlan(b))
	}

	if cmd.Flags().Changed("progress") {
		b, _ := cmd.Flags().GetBool("progress")
		res = append(res, config.OptProgress(b))
	}

	if cmd.Flags().Changed("check-sources") {
		b, _ := cmd.Flags().GetBool("check-sources")
		res = append(res, config.OptWithSourcesCheck(b))
	}

	return res
}
