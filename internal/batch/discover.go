package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover resolves root (file or directory) into the ordered list of
// tasks whose extension appears in exts (lowercase, with leading dot).
// Directory walks are pruned to the top level when recursive is false,
// and the result is sorted lexicographically for deterministic
// processing order.
func Discover(root string, exts map[string]bool, recursive bool) ([]Task, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !exts[strings.ToLower(filepath.Ext(absRoot))] {
			return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(absRoot))
		}
		return []Task{{
			Path:    absRoot,
			RelPath: filepath.Base(absRoot),
			Display: filepath.Base(absRoot),
		}}, nil
	}

	var tasks []Task
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !recursive && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			rel = filepath.Base(path)
		}
		tasks = append(tasks, Task{Path: path, RelPath: rel, Display: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Path < tasks[j].Path })
	return tasks, nil
}
