package embed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shuxs/go.incdir/res"
)

type walker struct {
	g      *Generator
	kind   res.Compression
	active map[string]bool //当前路径上的目录(真实路径), 用于发现链接环
}

// walk visits full and, for directories, everything below it. os.Stat is
// used throughout so symbolic links are followed.
func (w *walker) walk(full string, depth int) error {
	if w.g.target != "" && full == w.g.target {
		return filepath.SkipDir
	}

	stat, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if _, lerr := os.Lstat(full); lerr == nil {
				w.g.log.Warn("skip dangling symlink", "path", full)
				return filepath.SkipDir
			}
		}
		return fmt.Errorf("生成: 读取[ %s ]出错, %w", full, err)
	}

	rel, _ := filepath.Rel(w.g.root, full)
	key := res.Key(filepath.ToSlash(rel))

	if m := w.g.cfg.Matcher; m != nil && key != "." {
		if err := m(key, stat); err != nil {
			return err
		}
	}

	if !stat.IsDir() {
		return w.g.AddFile(full, w.kind)
	}

	if limit := w.g.cfg.MaxDepth; limit > 0 && depth >= limit {
		w.g.log.Debug("max depth reached", "path", key)
		return nil
	}

	dir, err := filepath.EvalSymlinks(full)
	if err != nil {
		return fmt.Errorf("生成: 读取[ %s ]出错, %w", full, err)
	}
	if w.active[dir] {
		w.g.log.Warn("skip symlink loop", "path", key, "target", dir)
		return nil
	}
	w.active[dir] = true
	defer delete(w.active, dir)

	children, err := os.ReadDir(full)
	if err != nil {
		return fmt.Errorf("生成: 读取目录[ %s ]出错, %w", full, err)
	}
	for _, c := range children {
		if err := w.walk(filepath.Join(full, c.Name()), depth+1); err != nil {
			if err == filepath.SkipDir {
				continue
			}
			return err
		}
	}
	return nil
}
