package util

import (
	"fmt"
	"io"
	"log"
	"os"
)

var Logger *log.Logger = log.Default()

// InitLogger points Logger at stdout plus a per-run log file.
func InitLogger(tag string) {
	fname := fmt.Sprintf("train_logs_%s.txt", tag)
	file, _ := os.Create(fname)
	mw := io.MultiWriter(os.Stdout, file)
	prefix := fmt.Sprintf("%s: ", tag)
	Logger = log.New(mw, prefix, log.LstdFlags)
}
