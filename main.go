package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/qss/internal/action"
	"github.com/llehouerou/qss/internal/config"
	"github.com/llehouerou/qss/internal/errmsg"
	"github.com/llehouerou/qss/internal/gesture"
	"github.com/llehouerou/qss/internal/keymap"
	"github.com/llehouerou/qss/internal/sequence"
	"github.com/llehouerou/qss/internal/server"
	"github.com/llehouerou/qss/internal/session"
	"github.com/llehouerou/qss/internal/stderr"
	"github.com/llehouerou/qss/internal/tools"
	"github.com/llehouerou/qss/internal/trash"
	"github.com/llehouerou/qss/internal/ui"
)

func main() {
	cmd := &cli.Command{
		Name:      "qss",
		Usage:     "Image slideshow for the terminal and the browser",
		ArgsUsage: "[paths...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Search subdirectories for images",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"x"},
				Usage:   "Glob patterns to exclude",
			},
			&cli.FloatFlag{
				Name:    "speed",
				Aliases: []string{"s"},
				Usage:   "Seconds between slides",
			},
			&cli.BoolFlag{
				Name:  "repeat",
				Usage: "Loop back to the first image after the last",
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "Shuffle image order on start",
			},
			&cli.BoolFlag{
				Name:  "always-on-top",
				Usage: "Keep window above all others",
			},
			&cli.BoolFlag{
				Name:  "paused",
				Usage: "Start paused",
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Status line format, or a $1-$6 preset",
			},
			&cli.BoolFlag{
				Name:  "web",
				Usage: "Serve over HTTP instead of the terminal UI",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Web server port",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Web server host",
			},
			&cli.StringFlag{
				Name:  "external-tools",
				Usage: "Directory to search for tool scripts",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:  "generate-config",
				Usage: "Write the default configuration file",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						path = "qss.toml"
					}
					if err := config.WriteDefault(path); err != nil {
						return errmsg.Wrap(errmsg.OpConfigWrite, err)
					}
					fmt.Println("wrote", path)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if cmd.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	applyOverrides(cfg, cmd)

	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"."}
	}

	seq, err := sequence.Collect(args, sequence.CollectOptions{
		Recursive:       cfg.Images.Recursive,
		ExcludePatterns: cfg.Images.ExcludePatterns,
		Extensions:      cfg.Images.Extensions,
	})
	if err != nil {
		return errmsg.Wrap(errmsg.OpImageCollect, err)
	}
	if seq.Len() == 0 {
		return fmt.Errorf("no images found in %v", args)
	}
	logger.Debug("collected images", "count", seq.Len())

	collab := action.Collaborators{
		RememberFile: cfg.Slideshow.RememberFile,
		NotesFile:    cfg.Slideshow.NotesFile,
	}

	var bin *trash.Bin
	if cfg.Files.EnableTrash {
		bin, err = trash.Open(trashBase(args))
		if err != nil {
			return errmsg.Wrap(errmsg.OpInitialize, err)
		}
		defer bin.Close()
		if cfg.Files.AutoCleanupDays > 0 {
			age := time.Duration(cfg.Files.AutoCleanupDays) * 24 * time.Hour
			if n, err := bin.CleanupOlderThan(age); err != nil {
				logger.Warn(errmsg.Format(errmsg.OpTrashCleanup, err))
			} else if n > 0 {
				logger.Debug("cleaned up trash", "removed", n)
			}
		}
		collab.Trash = bin
	}

	toolMgr, err := tools.Discover(cfg.Tools.BaseName, cfg.Tools.SearchDir)
	if err != nil {
		logger.Warn(errmsg.Format(errmsg.OpToolDiscover, err))
	} else {
		if toolMgr.Len() > 0 {
			logger.Debug("discovered external tools", "count", toolMgr.Len())
		}
		collab.Tools = toolMgr
	}

	registry := action.NewRegistry()
	action.RegisterDefaults(registry, collab)
	dispatcher := action.NewDispatcher(registry)

	historySize := cfg.Files.MaxUndoHistory
	if !cfg.Files.EnableUndo {
		historySize = -1
	}
	opts := session.Options{
		Speed:        cfg.Slideshow.Speed,
		Repeat:       cfg.Slideshow.Repeat,
		Shuffle:      cfg.Slideshow.Shuffle,
		Paused:       cfg.Slideshow.PausedOnStart,
		AlwaysOnTop:  cfg.Slideshow.AlwaysOnTop,
		StatusFormat: session.StatusTemplate(cfg.Slideshow.StatusFormat),
		HistorySize:  historySize,
		Thresholds:   gesture.DefaultThresholds(),
	}
	manager := session.NewManager(seq, opts)

	if cmd.Bool("web") {
		return runWeb(ctx, cfg, manager, dispatcher, logger)
	}
	return runTUI(manager, dispatcher, cfg)
}

func runWeb(ctx context.Context, cfg *config.Config, manager *session.Manager, dispatcher *action.Dispatcher, logger *log.Logger) error {
	hotkeys := keymap.NewResolver(cfg.Hotkeys.Common, cfg.Hotkeys.Web)
	gestures := keymap.NewResolver(cfg.Gestures.Common, cfg.Gestures.Web)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(manager, dispatcher, hotkeys, gestures, logger)
	if err := srv.Run(ctx, cfg.Web.Host, cfg.Web.Port); err != nil {
		return errmsg.Wrap(errmsg.OpServerStart, err)
	}
	return nil
}

func runTUI(manager *session.Manager, dispatcher *action.Dispatcher, cfg *config.Config) error {
	hotkeys := keymap.NewResolver(cfg.Hotkeys.Common, cfg.Hotkeys.GUI)
	gestures := keymap.NewResolver(cfg.Gestures.Common, cfg.Gestures.GUI)

	sess := manager.Create("local")
	m := ui.New(sess, dispatcher, hotkeys, gestures)

	// The logger writes to fd 2; route that into the UI message area
	// while the alternate screen is up.
	if err := stderr.Start(); err == nil {
		defer stderr.Stop()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// applyOverrides layers explicitly set CLI flags over the file config.
func applyOverrides(cfg *config.Config, cmd *cli.Command) {
	if cmd.IsSet("recursive") {
		cfg.Images.Recursive = cmd.Bool("recursive")
	}
	if cmd.IsSet("exclude") {
		cfg.Images.ExcludePatterns = cmd.StringSlice("exclude")
	}
	if cmd.IsSet("speed") {
		cfg.Slideshow.Speed = cmd.Float("speed")
	}
	if cmd.IsSet("repeat") {
		cfg.Slideshow.Repeat = cmd.Bool("repeat")
	}
	if cmd.IsSet("shuffle") {
		cfg.Slideshow.Shuffle = cmd.Bool("shuffle")
	}
	if cmd.IsSet("always-on-top") {
		cfg.Slideshow.AlwaysOnTop = cmd.Bool("always-on-top")
	}
	if cmd.IsSet("paused") {
		cfg.Slideshow.PausedOnStart = cmd.Bool("paused")
	}
	if cmd.IsSet("status") {
		cfg.Slideshow.StatusFormat = cmd.String("status")
	}
	if cmd.IsSet("port") {
		cfg.Web.Port = cmd.Int("port")
	}
	if cmd.IsSet("host") {
		cfg.Web.Host = cmd.String("host")
	}
	if cmd.IsSet("external-tools") {
		cfg.Tools.SearchDir = cmd.String("external-tools")
	}
}

// trashBase picks the directory the trash lives under: the first
// directory argument, or the parent of the first file.
func trashBase(args []string) string {
	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil {
			if info.IsDir() {
				return arg
			}
			return filepath.Dir(arg)
		}
	}
	return "."
}
