// Command codeview views source files with syntax highlighting in the
// terminal and exports them as PNG images.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bkmeneguello/codeview/internal/config"
	"github.com/bkmeneguello/codeview/internal/logging"
	"github.com/bkmeneguello/codeview/internal/theme"
)

// Set via ldflags.
var version = "dev"

// newScreen is replaced in tests.
var newScreen = tcell.NewScreen

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		logging.Default().Error("command failed", logging.FieldError, err)
		return 1
	}
	return 0
}

// app is the state shared by every command: configuration, palette and
// persistent flags.
type app struct {
	v       *viper.Viper
	cfg     config.Config
	palette theme.Palette

	cfgFile string
	debug   bool
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "codeview [files...]",
		Short: "View source files with syntax highlighting",
		Long: `Opens the given files in a terminal viewer with syntax highlighting for
C/C++, Python, HTML, CSS and JavaScript.

Keys: Tab/Shift+Tab switch files, Ctrl+F find, n/N next/previous match,
Ctrl+G goto line, c toggle comments, Ctrl+E export PNG, Ctrl+W close,
: command line, q quit.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version,
		PersistentPreRunE: a.setup,
		RunE:              a.runViewer,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: codeview.yaml in ~/.config/codeview, ~ or .)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.String("theme", "", "color theme: default or any chroma style name")
	flags.String("font", "", "TrueType font used for image export")
	_ = a.v.BindPFlag("theme", flags.Lookup("theme"))
	_ = a.v.BindPFlag("font_path", flags.Lookup("font"))

	cmd.AddCommand(
		a.newExportCommand(),
		a.newStripCommand(),
		a.newCatCommand(),
		a.newSearchCommand(),
		a.newConfigCommand(),
		newVersionCommand(),
	)
	return cmd
}

// setup loads the configuration and installs a logger writing to stderr.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if a.debug {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	palette, err := theme.Load(cfg.Theme)
	if err != nil {
		return err
	}
	a.palette = palette

	logger := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	logger.Debug("config loaded", logging.FieldPath, config.Used(a.v))
	return nil
}

// runViewer opens args in the interactive viewer. The viewer owns the
// terminal, so its log goes to a file.
func (a *app) runViewer(cmd *cobra.Command, args []string) error {
	logFile := a.cfg.LogFile
	if logFile == "" {
		logFile = logging.DefaultFile()
	}
	logger, closer, err := logging.NewFile(a.cfg.LogLevel, logFile)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closer.Close()
	ctx := logging.WithLogger(cmd.Context(), logger)

	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	viewer := NewViewer(ctx, screen, a.cfg, a.palette)
	defer viewer.Close()
	for _, path := range args {
		viewer.openFile(path)
	}
	logger.Info("viewer started", logging.FieldVersion, version)
	viewer.Run()
	return nil
}
