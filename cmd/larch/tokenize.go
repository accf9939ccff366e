package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"larch/internal/diag"
	"larch/internal/diagfmt"
	"larch/internal/sexpr"
	"larch/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lr",
	Short: "Tokenize a larch source file",
	Long:  `Tokenize breaks a larch source file into its reader tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return err
	}

	reader := sexpr.NewReader(fs.Get(id))
	for {
		tok, err := reader.Next()
		if err != nil {
			if d, ok := diag.FromError(err); ok {
				diagfmt.Pretty(os.Stderr, d, fs, diagfmt.Options{Color: useColor(cmd, os.Stderr)})
				return errCheckFailed
			}
			return err
		}
		if tok.Kind == sexpr.EOF {
			return nil
		}
		start, _ := fs.Resolve(tok.Span)
		fmt.Fprintf(os.Stdout, "%d:%d\t%s\t%q\n", start.Line, start.Col, tok.Kind, tok.Text)
	}
}
