package util

import (
	"fmt"
	"io"
	"log"
	"os"
)

var PlotLogger *log.Logger = log.Default()

// InitPlotLogger opens the file that per-episode reward curves are written
// to, one "episode reward" pair per line for plotting.
func InitPlotLogger(tag string) {
	fname := fmt.Sprintf("plot_logs_%s.txt", tag)
	file, _ := os.Create(fname)
	mw := io.MultiWriter(file)
	prefix := fmt.Sprintf("plot_logs_%s: ", tag)
	PlotLogger = log.New(mw, prefix, 0)
}
