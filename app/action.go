package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ggoeuh/DAL-sub000/internal/apperr"
	"github.com/ggoeuh/DAL-sub000/internal/config"
	"github.com/ggoeuh/DAL-sub000/internal/notify"
	"github.com/ggoeuh/DAL-sub000/internal/osutil"
	"github.com/ggoeuh/DAL-sub000/internal/pathutil"
	"github.com/ggoeuh/DAL-sub000/internal/static"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/internal/ui"
	"github.com/ggoeuh/DAL-sub000/schedule"
	"github.com/ggoeuh/DAL-sub000/store"
)

const (
	envNoColor    = "NO_COLOR"
	envDalNoColor = "DAL_NO_COLOR"

	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// timeNow is replaced in tests.
var timeNow = time.Now

var (
	errSaveFailed = &apperr.Error{
		Message: "changes were not saved",
	}

	errMissingArg = &apperr.Error{
		Message: "missing argument: %s",
	}

	errInvalidDateArg = &apperr.Error{
		Message: "unable to understand date %q",
	}
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// env holds what every command needs to reach the user's bundle.
type env struct {
	cfg      *config.Config
	gw       store.Gateway
	saver    *store.Saver
	notifier *notify.Notifier
}

// loadConfig resolves paths, reads the config file (prompting on first run),
// applies global flags and points slog at the rotating log file.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	if err := pathutil.Initialize(); err != nil {
		return nil, err
	}

	configPath := pathutil.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithDefaultPaths(
			pathutil.BoltFilePath(),
			pathutil.SQLiteFilePath(),
		),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	setupLogger(cfg.SlogLevel())

	ui.DarkTheme = cfg.Display.DarkTheme

	slog.Debug("config loaded", slog.String("config", cfg.String()))

	return cfg, nil
}

func setupLogger(level slog.Level) {
	w := &lumberjack.Logger{
		Filename:   pathutil.LogFilePath(),
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}

// newEnv loads the configuration and opens the storage backend. Callers
// must call close.
func newEnv(ctx *cli.Context) (*env, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	hook, err := store.CommandHook(cfg.Settings.Cmd)
	if err != nil {
		return nil, err
	}

	gw, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := static.Install(pathutil.Dir()); err != nil {
		slog.Warn("unable to install notification icon", slog.Any("error", err))
	}

	return &env{
		cfg:      cfg,
		gw:       gw,
		saver:    store.NewSaver(gw, store.WithHook(hook)),
		notifier: notify.New(cfg.Notifications.Enabled, pathutil.Dir()),
	}, nil
}

func (e *env) close() {
	if err := e.gw.Close(); err != nil {
		slog.Warn("unable to close database", slog.Any("error", err))
	}
}

func (e *env) user() string {
	return e.cfg.Settings.User
}

// boardOptions converts the configured board settings.
func (e *env) boardOptions() schedule.Options {
	return schedule.Options{
		SlotHeight:      float64(e.cfg.Board.SlotHeight),
		NoticeDuration:  e.cfg.Board.NoticeDuration,
		AutoScrollDelay: e.cfg.Board.AutoScrollDelay,
		RevertOnFailure: e.cfg.Storage.RevertOnFailure,
	}
}

func (e *env) openBoard(ctx context.Context) (*schedule.Board, error) {
	return schedule.Open(ctx, e.saver, e.user(), e.boardOptions())
}

// settle waits for the board's most recent save and turns a failure into an
// error, alerting the user through a desktop notification as well.
func (e *env) settle(ctx context.Context, b *schedule.Board) error {
	p := b.LastSave()
	if p == nil {
		return nil
	}

	r := p.Wait(ctx)
	if r.Success {
		return nil
	}

	e.notifier.Notify("dal", "save failed: "+r.Error)

	return errSaveFailed.Wrap(r.Err())
}

// withBoard opens the user's board, runs fn and waits for the resulting
// save.
func withBoard(
	ctx *cli.Context,
	fn func(c context.Context, b *schedule.Board) error,
) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	b, err := e.openBoard(ctx.Context)
	if err != nil {
		return err
	}

	defer b.Close()

	if err := fn(ctx.Context, b); err != nil {
		return err
	}

	return e.settle(ctx.Context, b)
}

// argAt returns the trimmed positional argument i.
func argAt(ctx *cli.Context, i int, name string) (string, error) {
	s := strings.TrimSpace(ctx.Args().Get(i))
	if s == "" {
		return "", errMissingArg.Fmt(name)
	}

	return s, nil
}

// dateArg parses the --date flag. An empty value yields fallback.
func dateArg(ctx *cli.Context, fallback string) (string, error) {
	s := strings.TrimSpace(ctx.String("date"))
	if s == "" {
		return fallback, nil
	}

	t, err := timeutil.FromStr(s)
	if err != nil {
		return "", errInvalidDateArg.Fmt(s)
	}

	return timeutil.FormatDate(t), nil
}

// monthArg parses the --month flag. An empty value yields the current month.
func monthArg(ctx *cli.Context) string {
	if m := strings.TrimSpace(ctx.String("month")); m != "" {
		return m
	}

	return timeutil.CurrentMonth(timeNow())
}

// editConfigAction handles the edit-config command which opens the dal
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	if _, err := loadConfig(ctx); err != nil {
		return err
	}

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf("storage backends: %s, %s\n", config.BackendBolt, config.BackendSQLite)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envDalNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting dal")

	return nil
}
