// Package main provides the dwhetl CLI application.
// dwhetl loads song and event logs into a Redshift star schema.
package main

import (
	"github.com/gnames/dwhetl/cmd"
)

func main() {
	cmd.Execute()
}
