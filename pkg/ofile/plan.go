package ofile

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/gammazero/toposort"

	"github.com/arthur-debert/ofile/pkg/ofile/core"
	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

type stepKind int

const (
	stepMkdir stepKind = iota
	stepCopyFile
	stepRemove
)

func (k stepKind) String() string {
	switch k {
	case stepMkdir:
		return "mkdir"
	case stepCopyFile:
		return "copy"
	default:
		return "remove"
	}
}

// step is one filesystem call of a recursive operation, keyed by its target.
type step struct {
	kind stepKind
	src  string
	dst  string
	mode fs.FileMode
}

// workList collects the steps of a tree operation before anything is touched,
// so the traversal never sees entries the operation itself creates.
type workList struct {
	steps map[string]*step
	order []string
	edges []toposort.Edge
}

func newWorkList() *workList {
	return &workList{steps: make(map[string]*step)}
}

func (w *workList) add(s *step) {
	if _, exists := w.steps[s.dst]; !exists {
		w.order = append(w.order, s.dst)
	}
	w.steps[s.dst] = s
}

// before records that the step targeting first has to run before then.
func (w *workList) before(first, then string) {
	// Edge is [2]interface{} where element 0 comes before element 1
	w.edges = append(w.edges, toposort.Edge{first, then})
}

// sorted returns the steps in an order satisfying every before constraint.
func (w *workList) sorted() ([]*step, error) {
	sortedIDs, err := toposort.Toposort(w.edges)
	if err != nil {
		return nil, fmt.Errorf("ordering %d steps: %w", len(w.steps), err)
	}

	result := make([]*step, 0, len(w.steps))
	seen := make(map[string]bool, len(w.steps))
	for _, idInterface := range sortedIDs {
		id, ok := idInterface.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type in topological sort result: %T", idInterface)
		}
		if s, exists := w.steps[id]; exists && !seen[id] {
			result = append(result, s)
			seen[id] = true
		}
	}

	// Steps without any constraint, e.g. a lone file
	for _, id := range w.order {
		if !seen[id] {
			result = append(result, w.steps[id])
			seen[id] = true
		}
	}
	return result, nil
}

// planCopy walks src and schedules a mkdir for every directory and a copy for
// every file, each directory ahead of its contents. Unreadable subtrees are
// reported and skipped.
func planCopy(fsys filesystem.FullFileSystem, src, dst string, info fs.FileInfo) (*workList, []core.ChildFailure) {
	w := newWorkList()
	var failures []core.ChildFailure

	var visit func(src, dst string, info fs.FileInfo)
	visit = func(src, dst string, info fs.FileInfo) {
		if !info.IsDir() {
			w.add(&step{kind: stepCopyFile, src: src, dst: dst, mode: info.Mode().Perm()})
			return
		}

		w.add(&step{kind: stepMkdir, src: src, dst: dst})
		entries, err := fsys.ReadDir(src)
		if err != nil {
			failures = append(failures, core.ChildFailure{Path: src, Err: err})
			return
		}
		for _, e := range entries {
			childInfo, err := e.Info()
			if err != nil {
				failures = append(failures, core.ChildFailure{Path: path.Join(src, e.Name()), Err: err})
				continue
			}
			childDst := path.Join(dst, e.Name())
			w.before(dst, childDst)
			visit(path.Join(src, e.Name()), childDst, childInfo)
		}
	}
	visit(src, dst, info)
	return w, failures
}

// planDelete schedules a remove for name and every descendant, each entry
// ahead of its parent directory.
func planDelete(fsys filesystem.FullFileSystem, name string, isDir bool) (*workList, []core.ChildFailure) {
	w := newWorkList()
	var failures []core.ChildFailure

	var visit func(name string, isDir bool)
	visit = func(name string, isDir bool) {
		w.add(&step{kind: stepRemove, dst: name})
		if !isDir {
			return
		}
		entries, err := fsys.ReadDir(name)
		if err != nil {
			failures = append(failures, core.ChildFailure{Path: name, Err: err})
			return
		}
		for _, e := range entries {
			child := path.Join(name, e.Name())
			w.before(child, name)
			visit(child, e.IsDir())
		}
	}
	visit(name, isDir)
	return w, failures
}
