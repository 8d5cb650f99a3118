package app

import "github.com/urfave/cli/v2"

var (
	userFlag = &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Act on the schedules of this user instead of settings.user",
	}

	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "Storage backend to use: bolt or sqlite",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	portFlag = &cli.IntFlag{
		Name:    "port",
		Aliases: []string{"p"},
		Usage:   "Port for the HTTP API (default: server.port)",
	}

	dateFlag = &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "Date as yyyy-MM-dd or in natural language ('tomorrow', 'next friday'). Defaults to today",
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Start time (HH:MM)",
	}

	endFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "End time (HH:MM), up to 24:00",
	}

	titleFlag = &cli.StringFlag{
		Name:    "title",
		Aliases: []string{"t"},
		Usage:   "Schedule title",
	}

	descFlag = &cli.StringFlag{
		Name:  "desc",
		Usage: "Schedule description",
	}

	tagFlag = &cli.StringFlag{
		Name:  "tag",
		Usage: "Tag name; its tag type decides the schedule's colour",
	}

	repeatFlag = &cli.IntFlag{
		Name:  "repeat",
		Usage: "Number of weeks to repeat the schedule for",
		Value: 1,
	}

	intervalFlag = &cli.IntFlag{
		Name:  "interval",
		Usage: "Number of weeks between repetitions",
		Value: 1,
	}

	weekdaysFlag = &cli.StringFlag{
		Name:    "weekdays",
		Aliases: []string{"w"},
		Usage:   "Comma-delimited weekdays of each repeated week (e.g. 'mon,wed' or '월,수')",
	}

	edgeFlag = &cli.StringFlag{
		Name:  "edge",
		Usage: "Edge to move: top or bottom",
		Value: "bottom",
	}

	toFlag = &cli.StringFlag{
		Name:     "to",
		Usage:    "New time of the edge (HH:MM)",
		Required: true,
	}

	weekFlag = &cli.BoolFlag{
		Name:  "week",
		Usage: "List the week (Monday to Sunday) containing --date",
	}

	monthFlag = &cli.StringFlag{
		Name:    "month",
		Aliases: []string{"m"},
		Usage:   "Month as yyyy-MM. Defaults to the current month",
	}

	allMonthFlag = &cli.BoolFlag{
		Name:  "all-month",
		Usage: "List the whole month containing --date",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print output in JSON format",
	}

	planTypeFlag = &cli.StringFlag{
		Name:     "type",
		Usage:    "Tag type the plan counts towards",
		Required: true,
	}

	planNameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Plan name",
	}

	hoursFlag = &cli.IntFlag{
		Name:  "hours",
		Usage: "Estimated hours for the plan",
	}
)
