package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"larch/internal/diag"
	"larch/internal/diagfmt"
	"larch/internal/parser"
	"larch/internal/sexpr"
	"larch/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.lr",
	Short: "Parse a larch source file",
	Long:  `Parse reads a larch source file, lowers it to the form tree, and prints the reconstructed forms`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return err
	}

	forms, err := sexpr.Read(fs.Get(id))
	if err != nil {
		return reportParseError(cmd, fs, err)
	}
	// Lowering validates form shapes even though only the reader tree is
	// printed.
	if _, err := parser.ParseProgram(forms); err != nil {
		return reportParseError(cmd, fs, err)
	}
	for _, form := range forms {
		fmt.Fprintln(os.Stdout, form.String())
	}
	return nil
}

func reportParseError(cmd *cobra.Command, fs *source.FileSet, err error) error {
	if d, ok := diag.FromError(err); ok {
		diagfmt.Pretty(os.Stderr, d, fs, diagfmt.Options{Color: useColor(cmd, os.Stderr)})
		return errCheckFailed
	}
	return err
}
