package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reactc/internal/diag"
	"reactc/internal/reactive"
	"reactc/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file>",
	Short: "Parse a reactive-HIR fixture and dump it back",
	Long:  "Parse validates a fixture and prints the normalized dump without pruning.",
	Args:  cobra.ExactArgs(1),
	RunE:  parseExecution,
}

func parseExecution(cmd *cobra.Command, args []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	bag := diag.NewBag(maxDiagnostics)
	fns, perr := reactive.Parse(fileSet.Get(id), diag.BagReporter{Bag: bag})
	bag.Sort()
	if out := diag.FormatShort(bag.Items(), fileSet, true); out != "" {
		fmt.Fprintln(os.Stderr, out)
	}
	if perr != nil {
		return fmt.Errorf("parse failed")
	}
	if !quiet {
		if err := reactive.Dump(os.Stdout, fns); err != nil {
			return err
		}
	}
	return nil
}
