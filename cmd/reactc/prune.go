package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"reactc/internal/diag"
	"reactc/internal/driver"
	"reactc/internal/observ"
	"reactc/internal/trace"
	"reactc/internal/ui"
)

var pruneCmd = &cobra.Command{
	Use:   "prune [flags] <file>...",
	Short: "Prune non-escaping reactive scopes",
	Long: `Prune parses reactive-HIR fixtures, deletes reactive scopes whose
outputs cannot reach a return value, and prints the rewritten functions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: pruneExecution,
}

func init() {
	pruneCmd.Flags().Bool("memoize-jsx", false, "treat fresh JSX values as always-memoize")
	pruneCmd.Flags().Int("jobs", 0, "max parallel files (0 = GOMAXPROCS)")
	pruneCmd.Flags().Bool("no-cache", false, "bypass the disk cache")
}

func pruneExecution(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	manifest, manifestFound, err := loadProjectManifest(".")
	if err != nil {
		return err
	}

	opts := driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	}
	cacheEnabled := true
	if manifestFound {
		opts.Prune.MemoizeJsxElements = manifest.Config.Memoize.JsxElements
		cacheEnabled = manifest.Config.Cache.Enabled
	}
	if cmd.Flags().Changed("memoize-jsx") {
		opts.Prune.MemoizeJsxElements, _ = cmd.Flags().GetBool("memoize-jsx")
	}

	tracer, err := tracerFromFlags(cmd, manifest)
	if err != nil {
		return err
	}
	opts.Tracer = tracer

	if cacheEnabled && !noCache {
		cache, err := driver.OpenDiskCache("reactc")
		if err == nil {
			opts.Cache = cache
		}
	}

	timer := observ.NewTimer()
	start := time.Now()

	phase := timer.Begin("prune")
	results, fileSet, err := driver.PruneFiles(cmd.Context(), args, opts)
	timer.End(phase, fmt.Sprintf("%d file(s)", len(args)))
	if err != nil {
		return err
	}

	phase = timer.Begin("report")
	failed := 0
	for i := range results {
		r := &results[i]
		if !r.Ok() {
			failed++
		}
		r.Bag.Sort()
		if out := diag.FormatShort(r.Bag.Items(), fileSet, true); out != "" {
			fmt.Fprintln(os.Stderr, out)
		}
		if !quiet && r.Output != "" {
			if len(results) > 1 {
				fmt.Printf("// %s\n", r.Path)
			}
			fmt.Print(r.Output)
		}
	}
	if !quiet && len(results) > 1 {
		fmt.Fprint(os.Stderr, ui.Summary(results, time.Since(start)))
	}
	timer.End(phase, "")

	if timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}

// tracerFromFlags builds a tracer from --trace, falling back to the
// manifest's [trace].level.
func tracerFromFlags(cmd *cobra.Command, manifest *projectManifest) (trace.Tracer, error) {
	value, err := cmd.Flags().GetString("trace")
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("trace") && manifest != nil && manifest.Config.Trace.Level != "" {
		value = manifest.Config.Trace.Level
	}
	level, err := trace.ParseLevel(value)
	if err != nil {
		return nil, err
	}
	return trace.NewStream(os.Stderr, level), nil
}
