// Package report prints command outcomes to the terminal
package report

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/ggoeuh/DAL-sub000/internal/osutil"
)

func ScheduleAdded(n int) {
	if n == 1 {
		pterm.Success.Println("schedule added successfully")
		return
	}

	pterm.Success.Printfln("%d schedules added successfully", n)
}

func Done(format string, args ...any) {
	pterm.Success.Printfln(format, args...)
}

func Info(format string, args ...any) {
	pterm.Info.Printfln(format, args...)
}

func Warn(format string, args ...any) {
	pterm.Warning.Printfln(format, args...)
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(int(osutil.ExitError))
}
