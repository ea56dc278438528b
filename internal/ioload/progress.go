package ioload

import (
	"os"

	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a progress bar on stderr, so it does not mix
// with phase banners on stdout.
func newProgressBar(
	total int,
	prefix string,
) *pb.ProgressBar {
	bar := pb.Full.New(total)
	bar.SetWriter(os.Stderr)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar.Start()
}
