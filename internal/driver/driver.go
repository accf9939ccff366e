// Package driver runs the per-file checking pipeline: load, read, lower,
// check. Each file gets its own checker instance with a fresh registry and
// global scope; instances are never shared across files or goroutines.
package driver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"larch/internal/diag"
	"larch/internal/parser"
	"larch/internal/sema"
	"larch/internal/sexpr"
	"larch/internal/source"
)

// SourceExt is the larch source file extension.
const SourceExt = ".lr"

// Result is the outcome of checking one file. Exactly one of Type, Diag,
// or Err is meaningful: Err reports I/O failures, Diag the first (and only)
// check violation, and Type the program's inferred type on success.
type Result struct {
	Path   string
	FS     *source.FileSet
	Type   string
	Diag   *diag.Diagnostic
	Err    error
	Cached bool
}

// OK reports whether the file checked cleanly.
func (r Result) OK() bool {
	return r.Err == nil && r.Diag == nil
}

// CheckFile loads and checks one file, consulting cache when non-nil.
func CheckFile(path string, cache *DiskCache) Result {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	file := fs.Get(id)

	var payload DiskPayload
	if hit, err := cache.Get(file.Hash, &payload); err == nil && hit {
		return Result{Path: path, FS: fs, Type: payload.Type, Cached: true}
	}

	result := checkLoaded(path, fs, file)
	if result.OK() {
		// Cache write failures are not the user's problem.
		_ = cache.Put(file.Hash, &DiskPayload{Path: path, Type: result.Type})
	}
	return result
}

// CheckBytes checks in-memory content under a virtual file name. Used for
// stdin and tests; never touches the cache.
func CheckBytes(name string, content []byte) Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return checkLoaded(name, fs, fs.Get(id))
}

func checkLoaded(path string, fs *source.FileSet, file *source.File) Result {
	result := Result{Path: path, FS: fs}

	fail := func(err error) Result {
		if d, ok := diag.FromError(err); ok {
			result.Diag = d
		} else {
			result.Err = err
		}
		return result
	}

	forms, err := sexpr.Read(file)
	if err != nil {
		return fail(err)
	}
	program, err := parser.ParseProgram(forms)
	if err != nil {
		return fail(err)
	}
	checker := sema.New()
	programType, err := checker.CheckProgram(program)
	if err != nil {
		return fail(err)
	}
	result.Type = programType.Name()
	return result
}

// CollectFiles expands a path into the list of source files to check: the
// file itself, or every *.lr under a directory, sorted for deterministic
// output.
func CollectFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var paths []string
	err = filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), SourceExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
