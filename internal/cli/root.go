package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/ThomasStivers/labeller/pkg/errors"
	"github.com/ThomasStivers/labeller/pkg/label"
	"github.com/ThomasStivers/labeller/pkg/pipeline"
)

// generateOpts holds the flags of the root command.
type generateOpts struct {
	building   string
	columns    int
	expression string
	filename   string
	separator  string
	force      bool
	barcodes   bool
}

// generateCommand creates the label generation command, used as the root.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Labeller prints warehouse location labels",
		Long: `Labeller enumerates every storage location of a warehouse building and
prints the location labels as comma-separated rows, or as a printable page
of Code 39 barcodes.

Buildings: TLR, AF (402), MC (225) and BULK (220).

Examples:
  labeller                          # every TLR label, six per row
  labeller -b AF -e '^402-F-00'     # AF floor aisle 0
  labeller -b MC -c 3 -f mc.txt     # MC labels to a file, three per row
  labeller -b TLR -e 'TLR-01-20' --barcodes -f tunnel.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.building, "building", "b", pipeline.DefaultBuilding, "building code or alias")
	addOutputFlags(cmd, &opts)

	_ = cmd.RegisterFlagCompletionFunc("building", c.completeBuildings)

	return cmd
}

// addOutputFlags registers the flags shared by the commands that generate
// labels.
func addOutputFlags(cmd *cobra.Command, opts *generateOpts) {
	cmd.Flags().IntVarP(&opts.columns, "columns", "c", label.DefaultColumns, "labels per row")
	cmd.Flags().StringVarP(&opts.expression, "expression", "e", "", "case-insensitive regular expression filtering labels")
	cmd.Flags().StringVarP(&opts.filename, "filename", "f", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing --filename")
	cmd.Flags().BoolVar(&opts.barcodes, "barcodes", false, "write an HTML page of barcode images instead of text")
	cmd.Flags().StringVar(&opts.separator, "separator", label.DefaultSeparator, "separator between label fields")
}

// applyConfig fills flags the user did not set from the configuration.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *generateOpts) {
	flags := cmd.Flags()
	if !flags.Changed("building") {
		opts.building = c.Config.Building
	}
	if !flags.Changed("columns") {
		opts.columns = c.Config.Columns
	}
	if !flags.Changed("separator") {
		opts.separator = c.Config.Separator
	}
}

// runGenerate enumerates labels and writes the text grid or barcode sheet.
func (c *CLI) runGenerate(cmd *cobra.Command, opts generateOpts) error {
	ctx := cmd.Context()

	// Zero means "default" to the pipeline; on the command line it is an error.
	if err := apperrors.ValidateColumns(opts.columns); err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		Building:   opts.building,
		Expression: opts.expression,
		Columns:    opts.columns,
		Format:     pipeline.FormatText,
		Separator:  opts.separator,
		Logger:     c.Logger,
	}

	dir := ""
	if opts.barcodes {
		dir = c.barcodeDir(opts.filename)
		pipeOpts.Format = pipeline.FormatHTML
		pipeOpts.ImageDir = imageURL(opts.filename, dir)
	}

	// Reject bad input before touching the file system.
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if _, ok := c.Rules.Lookup(opts.building); !ok {
		printWarning("Unknown building %q", opts.building)
		printDetail("Known buildings: %s", strings.Join(c.Rules.Names(), ", "))
	}

	if opts.filename != "" && !opts.force {
		if _, err := os.Lstat(opts.filename); err == nil {
			return fileExistsError(opts.filename)
		}
	}

	runner, err := c.newRunner(dir)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	var spinner *Spinner
	if opts.barcodes {
		spinner = newSpinnerWithContext(ctx, "Rendering barcodes...")
		pipeOpts.Progress = spinner.SetProgress
		spinner.Start()
	}
	result, err := runner.Execute(ctx, pipeOpts)
	if spinner != nil {
		if err != nil && !spinner.Cancelled() {
			spinner.StopWithError("Rendering barcodes failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	// The file is created only once there is something to put in it.
	if opts.filename != "" {
		err = writeOutput(opts.filename, opts.force, result.Output)
	} else {
		_, err = c.Stdout.Write(result.Output)
	}
	if err != nil {
		return fmt.Errorf("write labels: %w", err)
	}
	prog.done(fmt.Sprintf("Generated %d labels", result.Stats.Count))

	if opts.barcodes {
		printSuccess("%d barcodes printed.", result.Stats.Count)
		printStats(result.Stats.Generated, result.Stats.Reused)
		printFile(dir)
	} else if opts.filename != "" {
		printSuccess("%d labels written.", result.Stats.Count)
	}
	if opts.filename != "" {
		printFile(opts.filename)
	}
	return nil
}

// completeBuildings completes --building with every known code and alias.
func (c *CLI) completeBuildings(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, name := range c.Rules.Names() {
		if strings.HasPrefix(strings.ToUpper(name), strings.ToUpper(toComplete)) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, cobra.ShellCompDirectiveNoFileComp
}

func fileExistsError(path string) error {
	return apperrors.New(apperrors.ErrCodeFileExists, "%s already exists (use --force to overwrite)", path)
}
