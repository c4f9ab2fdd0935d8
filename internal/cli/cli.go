package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ThomasStivers/labeller/internal/config"
	"github.com/ThomasStivers/labeller/pkg/buildinfo"
	"github.com/ThomasStivers/labeller/pkg/cache"
	"github.com/ThomasStivers/labeller/pkg/pipeline"
	"github.com/ThomasStivers/labeller/pkg/topology"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "labeller"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config
	Rules  *topology.Registry

	// Stdout receives label output; status lines and logs go to stderr.
	Stdout io.Writer

	configFile string
}

// New creates a new CLI instance with a default logger.
func New(stdout, stderr io.Writer, level log.Level) *CLI {
	setUIOutput(stderr)
	cfg := config.Default()
	return &CLI{
		Logger: newLogger(stderr, level),
		Config: &cfg,
		Rules:  topology.Default(),
		Stdout: stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself generates labels.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.generateCommand()
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetVersionTemplate(buildinfo.Template())
	root.Flags().BoolP("version", "V", false, "print the version and exit")

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/labeller/config.toml)")
	root.PersistentFlags().String("topology", "", "building rules file replacing the built-in buildings")
	root.PersistentFlags().String("barcode-dir", "", "barcode image directory (default \"barcodes\")")
	root.PersistentPreRunE = c.setup

	// Register all subcommands
	root.AddCommand(c.buildingsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and the building rules. Flags set on the
// command line win over the configuration.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.Load(cmd.Context(), config.LoadOptions{ConfigFile: c.configFile})
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	flags := cmd.Flags()
	if flags.Changed("topology") {
		cfg.Topology, _ = flags.GetString("topology")
	}
	if flags.Changed("barcode-dir") {
		cfg.BarcodeDir, _ = flags.GetString("barcode-dir")
	}
	c.Config = cfg

	if cfg.Topology != "" {
		rules, err := topology.LoadFile(cfg.Topology)
		if err != nil {
			return err
		}
		c.Rules = rules
		c.Logger.Debug("loaded building rules", "path", cfg.Topology, "buildings", len(rules.Buildings()))
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Barcode images are kept
// in dir; an empty dir disables the image cache.
func (c *CLI) newRunner(dir string) (*pipeline.Runner, error) {
	store, err := newCache(dir)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c.Rules, store, c.Logger), nil
}

func newCache(dir string) (cache.Cache, error) {
	if dir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// barcodeDir returns where images for a sheet written to output are stored.
// A relative directory is resolved next to the output file, or against the
// working directory when writing to stdout.
func (c *CLI) barcodeDir(output string) string {
	dir := c.Config.BarcodeDir
	if dir == "" {
		dir = pipeline.DefaultImageDir
	}
	if filepath.IsAbs(dir) || output == "" {
		return dir
	}
	return filepath.Join(filepath.Dir(output), dir)
}

// imageURL returns the image directory as the sheet at output refers to it.
func imageURL(output, dir string) string {
	if output == "" {
		return filepath.ToSlash(dir)
	}
	base, err := filepath.Abs(filepath.Dir(output))
	if err != nil {
		return filepath.ToSlash(dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.ToSlash(dir)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// cacheDir returns the default barcode directory, resolved against the
// working directory.
func (c *CLI) cacheDir() (string, error) {
	return filepath.Abs(c.barcodeDir(""))
}

// =============================================================================
// Output Helpers
// =============================================================================

// openOutput opens path for writing. An existing file is refused unless
// force is set.
func openOutput(path string, force bool) (*os.File, error) {
	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0644)
	if os.IsExist(err) {
		return nil, fileExistsError(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// writeOutput creates path and writes data to it. A file it created is
// removed again if the write fails.
func writeOutput(path string, force bool, data []byte) error {
	f, err := openOutput(path, force)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
