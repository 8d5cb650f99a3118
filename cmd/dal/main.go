package main

import (
	"os"

	"github.com/ggoeuh/DAL-sub000/app"
	"github.com/ggoeuh/DAL-sub000/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	if err := run(os.Args); err != nil {
		report.Quit(err)
	}
}
