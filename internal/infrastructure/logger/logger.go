// Package logger provides the process-wide leveled loggers. All output
// goes to stdout in UTC with the calling file recorded.
package logger

import (
	"log"
	"os"
)

var (
	Info  *log.Logger
	Error *log.Logger
	Debug *log.Logger
	Warn  *log.Logger
)

func init() {
	flags := log.Ldate | log.Ltime | log.LUTC | log.Lshortfile

	Info = log.New(os.Stdout, "INFO: ", flags)
	Error = log.New(os.Stdout, "ERROR: ", flags)
	Debug = log.New(os.Stdout, "DEBUG: ", flags)
	Warn = log.New(os.Stdout, "WARN: ", flags)
}
