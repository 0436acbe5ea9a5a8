// Package cli implements the layout command-line interface: a thin cobra
// shell that opens the design in the data directory, runs one operation of
// the layout core against it and saves the result.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/layoutcore/internal/paths"
	"github.com/mesh-intelligence/layoutcore/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds global flag values and the state set up before each command.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	dryRun    bool

	config types.Config
	logger zerolog.Logger
}

// NewRootCmd creates the top-level "layout" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}
	root := &cobra.Command{
		Use:   "layout",
		Short: "Edit the objects of a schematic or board design",
		Long: "layout reads and writes object properties, moves, rotates and mirrors\n" +
			"selections and edits not-connected pins of a design stored on disk.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/layout)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "design directory (default: $(CWD)/.layout)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, "print changes as a JSON patch instead of saving them")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newShowCmd(a),
		newListCmd(a),
		newNameCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newMetaCmd(a),
		newMoveCmd(a),
		newTransformCmd(a, "rotate"),
		newTransformCmd(a, "mirror"),
		newNCCmd(a),
		newBlockCmd(a),
		newSchemaCmd(),
	)
	return root
}

// setup loads config.yaml, resolves the data directory and builds the
// logger.
func (a *app) setup(stderr io.Writer) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return err
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	dataDir, err := paths.ResolveDataDir(a.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return err
	}
	a.configDir = configDir
	a.config = types.Config{
		Backend:  v.GetString(cfgKeyBackend),
		DataDir:  dataDir,
		LogLevel: v.GetString(cfgKeyLogLevel),
	}
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", paths.ConfigFile(configDir), err)
	}
	a.logger = newLogger(stderr, a.config.Level())
	return nil
}

// newLogger returns a console logger for CLI use.
func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "layout:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// userErrors are failures caused by the arguments rather than the system.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrStaleReference,
	types.ErrInvalidID,
	types.ErrInvalidRef,
	types.ErrPropertyUnsupported,
	types.ErrTypeMismatch,
	types.ErrUnknownProperty,
	types.ErrUnknownKind,
	errUsage,
}

var errUsage = errors.New("usage")

func exitCode(err error) int {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}
