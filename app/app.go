// Package app wires dal's commands to the schedule, stats, board, reminder
// and server packages
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ggoeuh/DAL-sub000/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func scheduleCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "add",
			Usage:     "Add a schedule, optionally repeated over several weeks",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				titleFlag,
				startFlag,
				endFlag,
				dateFlag,
				descFlag,
				tagFlag,
				repeatFlag,
				intervalFlag,
				weekdaysFlag,
			},
			Action: addAction,
		},
		{
			Name:      "move",
			Usage:     "Move a schedule to another date or start time, keeping its duration",
			ArgsUsage: "ID",
			Flags:     []cli.Flag{dateFlag, startFlag},
			Action:    moveAction,
		},
		{
			Name:      "resize",
			Usage:     "Move the top or bottom edge of a schedule",
			ArgsUsage: "ID",
			Flags:     []cli.Flag{edgeFlag, toFlag},
			Action:    resizeAction,
		},
		{
			Name:      "copy",
			Usage:     "Copy a schedule to another date or start time",
			ArgsUsage: "ID",
			Flags:     []cli.Flag{dateFlag, startFlag},
			Action:    copyAction,
		},
		{
			Name:      "delete",
			Aliases:   []string{"rm"},
			Usage:     "Delete one or more schedules",
			ArgsUsage: "ID...",
			Flags:     []cli.Flag{yesFlag},
			Action:    deleteAction,
		},
		{
			Name:      "done",
			Usage:     "Toggle the completion of one or more schedules",
			ArgsUsage: "ID...",
			Action:    doneAction,
		},
		{
			Name:      "edit",
			Usage:     "Edit the fields of a schedule",
			ArgsUsage: "ID",
			Flags: []cli.Flag{
				titleFlag,
				descFlag,
				tagFlag,
				dateFlag,
				startFlag,
				endFlag,
			},
			Action: editAction,
		},
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Usage:   "List the schedules of a day, week or month",
			Flags: []cli.Flag{
				dateFlag,
				weekFlag,
				allMonthFlag,
				jsonFlag,
			},
			Action: listAction,
		},
	}
}

func taxonomyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "tag",
			Usage: "Manage tag types and tag names",
			Subcommands: []*cli.Command{
				{
					Name:      "add",
					Usage:     "Add a tag type and optionally tag names under it",
					ArgsUsage: "TYPE [NAME...]",
					Action:    tagAddAction,
				},
				{
					Name:      "rm",
					Usage:     "Remove tag names",
					ArgsUsage: "NAME...",
					Action:    tagRemoveAction,
				},
				{
					Name:      "rm-type",
					Usage:     "Remove a tag type together with its tag names",
					ArgsUsage: "TYPE",
					Action:    tagRemoveTypeAction,
				},
				{
					Name:   "list",
					Usage:  "List tag types with their colours and names",
					Flags:  []cli.Flag{jsonFlag},
					Action: tagListAction,
				},
			},
		},
		{
			Name:  "goal",
			Usage: "Manage monthly goals per tag type",
			Subcommands: []*cli.Command{
				{
					Name:      "set",
					Usage:     "Set the target time (HH:MM) of a tag type for a month",
					ArgsUsage: "MONTH TYPE HH:MM",
					Action:    goalSetAction,
				},
				{
					Name:      "rm",
					Usage:     "Remove the goal of a tag type for a month",
					ArgsUsage: "MONTH TYPE",
					Action:    goalRemoveAction,
				},
			},
		},
		{
			Name:  "plan",
			Usage: "Manage monthly plans; plans recompute the month's goals",
			Subcommands: []*cli.Command{
				{
					Name:  "add",
					Usage: "Add a plan",
					Flags: []cli.Flag{
						monthFlag,
						planTypeFlag,
						tagFlag,
						planNameFlag,
						descFlag,
						hoursFlag,
					},
					Action: planAddAction,
				},
				{
					Name:      "rm",
					Usage:     "Remove a plan",
					ArgsUsage: "ID",
					Action:    planRemoveAction,
				},
				{
					Name:   "list",
					Usage:  "List the plans of a month",
					Flags:  []cli.Flag{monthFlag, jsonFlag},
					Action: planListAction,
				},
			},
		},
	}
}

// Get retrieves the dal app instance.
func Get() *cli.App {
	commands := append(scheduleCommands(), taxonomyCommands()...)

	commands = append(commands,
		&cli.Command{
			Name:   "stats",
			Usage:  "Compare the time spent per tag type with the month's goals",
			Flags:  []cli.Flag{monthFlag, jsonFlag},
			Action: statsAction,
		},
		&cli.Command{
			Name:   "users",
			Usage:  "List every user that has saved at least once",
			Action: usersAction,
		},
		&cli.Command{
			Name:   "board",
			Usage:  "Open the interactive schedule grid",
			Flags:  []cli.Flag{dateFlag},
			Action: boardAction,
		},
		&cli.Command{
			Name:   "remind",
			Usage:  "Run in the foreground and send a notification before each of today's schedules",
			Action: remindAction,
		},
		&cli.Command{
			Name:   "serve",
			Usage:  "Serve the HTTP API",
			Flags:  []cli.Flag{portFlag},
			Action: serveAction,
		},
		&cli.Command{
			Name:   "edit-config",
			Usage:  "Edit the configuration file",
			Action: editConfigAction,
		},
	)

	dalApp := &cli.App{
		Name: "dal",
		Usage: `
		Dal plans your days on a half-hour grid. Schedules are tagged, coloured
		by tag type and compared against monthly goals.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands:             commands,
		Flags: []cli.Flag{
			userFlag,
			backendFlag,
			logLevelFlag,
			noColorFlag,
		},
		Action: boardAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return dalApp
}
