// Package embed generates Go source that embeds files into a program as a
// res.Files table.
package embed

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shuxs/go.incdir/res"
)

var (
	// ErrNoRoot is returned by New when Config.Root is empty.
	ErrNoRoot = errors.New("embed: project root not configured")

	// ErrNoOutDir is returned by New when Config.OutDir is empty.
	ErrNoOutDir = errors.New("embed: output directory not configured")
)

// Matcher decides whether a path found by AddDir is embedded. Returning
// filepath.SkipDir skips the file, or the whole subtree for a directory;
// any other error aborts the walk.
type Matcher func(key string, info fs.FileInfo) error

// RegexpMatcher keeps keys matching any of includes, otherwise drops keys
// matching any of excludes. Directories are always entered.
func RegexpMatcher(includes, excludes []*regexp.Regexp) Matcher {
	return func(key string, info fs.FileInfo) error {
		if info.IsDir() {
			return nil
		}
		for _, r := range includes {
			if r.MatchString(key) {
				return nil
			}
		}
		for _, r := range excludes {
			if r.MatchString(key) {
				return filepath.SkipDir
			}
		}
		return nil
	}
}

type Config struct {
	Root            string                        //项目根目录
	OutDir          string                        //输出目录
	Output          string                        //目标文件名, "-" 为标准输出
	Package         string                        //包名
	Name            string                        //变量名
	Passthrough     bool                          //全部直读磁盘, 不嵌入数据
	PassthroughRoot string                        //生成代码中直读磁盘的根目录
	Matcher         Matcher                       //过滤器
	MaxDepth        int                           //扫描目录最深, 0 不限
	Codecs          map[res.Compression]res.Codec //压缩器, 为空时使用 res.DefaultCodecs
	Logger          *slog.Logger                  //日志
}

// ConfigFromEnv returns a Config whose build paths come from INCDIR_ROOT
// and INCDIR_OUT.
func ConfigFromEnv() Config {
	return Config{
		Root:   os.Getenv("INCDIR_ROOT"),
		OutDir: os.Getenv("INCDIR_OUT"),
	}
}

// Generator accumulates table entries and renders them as Go source. It is
// not safe for concurrent use.
type Generator struct {
	cfg     Config
	root    string               //绝对路径
	target  string               //目标文件, 扫描时跳过
	entries map[string]res.Entry //已添加的文件
	log     *slog.Logger
}

// New validates cfg and returns an empty Generator.
func New(cfg Config) (*Generator, error) {
	if cfg.Root == "" {
		return nil, ErrNoRoot
	}
	if cfg.OutDir == "" {
		return nil, ErrNoOutDir
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("配置: 根目录[ %s ]异常: %w", cfg.Root, err)
	}
	stat, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("配置: 根目录[ %s ]异常: %w", cfg.Root, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("配置: 根目录[ %s ]不是目录", cfg.Root)
	}

	out, _ := filepath.Abs(cfg.OutDir)
	if cfg.Name == "" {
		cfg.Name = hump(filepath.Base(out))
	}
	if cfg.Name == "" {
		cfg.Name = "Files"
	}
	if cfg.Package == "" {
		cfg.Package = underline(filepath.Base(out))
	}
	if cfg.Package == "" {
		cfg.Package = "assets"
	}
	if err := goIdent(cfg.Name); err != nil {
		return nil, err
	}
	if err := goIdent(cfg.Package); err != nil {
		return nil, err
	}
	if cfg.Codecs == nil {
		cfg.Codecs = res.DefaultCodecs()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if cfg.Output == "" {
		cfg.Output = underline(cfg.Name) + "_gen.go"
	}
	var target string
	if cfg.Output != "-" {
		target, _ = filepath.Abs(filepath.Join(cfg.OutDir, cfg.Output))
	}

	return &Generator{
		cfg:     cfg,
		root:    root,
		target:  target,
		entries: make(map[string]res.Entry),
		log:     cfg.Logger,
	}, nil
}

// Config returns the effective configuration, defaults applied.
func (g *Generator) Config() Config {
	return g.cfg
}

// Len returns the number of entries added so far.
func (g *Generator) Len() int {
	return len(g.entries)
}

// AddFile adds one file. path is resolved against the project root and its
// normalized form becomes the key; adding the same key twice keeps the last
// one.
func (g *Generator) AddFile(path string, kind res.Compression) error {
	key, full, err := g.resolve(path)
	if err != nil {
		return err
	}
	if key == "." {
		return fmt.Errorf("生成: [ %s ]是根目录", path)
	}

	if g.cfg.Passthrough || kind == res.Passthrough {
		g.put(key, res.Entry{Kind: res.Passthrough})
		return nil
	}

	stat, err := os.Stat(full)
	if err != nil {
		return fmt.Errorf("生成: 读取文件[ %s ]出错, %w", path, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("生成: [ %s ]是一个目录", path)
	}

	e := res.Entry{
		Kind:    kind,
		Size:    stat.Size(),
		ModTime: stat.ModTime().Unix(),
	}

	switch {
	case kind == res.None:
		if e.Data, err = os.ReadFile(full); err != nil {
			return fmt.Errorf("生成: 读取文件[ %s ]出错, %w", path, err)
		}
	case kind == res.Gzip || kind == res.Zstd:
		c, ok := g.cfg.Codecs[kind]
		if !ok || c == nil {
			return fmt.Errorf("生成: [ %s ] %w: %s", path, res.ErrCodecUnavailable, kind)
		}
		if e.Data, err = compressFile(full, c); err != nil {
			return fmt.Errorf("生成: 压缩文件[ %s ]出错, %w", path, err)
		}
	default:
		return fmt.Errorf("生成: [ %s ] %w: %s", path, res.ErrCodecUnavailable, kind)
	}

	g.put(key, e)
	return nil
}

// AddDir adds every file below path, following symbolic links. Directory
// entries themselves are not added.
func (g *Generator) AddDir(path string, kind res.Compression) error {
	_, full, err := g.resolve(path)
	if err != nil {
		return err
	}
	w := &walker{g: g, kind: kind, active: make(map[string]bool)}
	if err := w.walk(full, 0); err != nil && err != filepath.SkipDir {
		return err
	}
	return nil
}

// Files returns a runtime table holding the entries added so far.
// Passthrough entries are read relative to the project root.
func (g *Generator) Files(opts ...res.Option) *res.Files {
	opts = append([]res.Option{res.WithRoot(g.root)}, opts...)
	return res.New(g.entries, opts...)
}

func (g *Generator) put(key string, e res.Entry) {
	if _, dup := g.entries[key]; dup {
		g.log.Warn("duplicate key replaced", "key", key)
	}
	g.entries[key] = e
	g.log.Debug("add", "key", key, "kind", e.Kind, "size", e.Size, "stored", len(e.Data))
}

// resolve maps a user supplied path to its table key and its location on
// disk.
func (g *Generator) resolve(p string) (key, full string, err error) {
	p = filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
	if filepath.IsAbs(p) {
		full = filepath.Clean(p)
	} else {
		full = filepath.Join(g.root, p)
	}

	rel, err := filepath.Rel(g.root, full)
	if err != nil {
		return "", "", fmt.Errorf("生成: 路径[ %s ]异常, %w", p, err)
	}
	key = res.Key(filepath.ToSlash(rel))
	if key == ".." || strings.HasPrefix(key, "../") {
		return "", "", fmt.Errorf("生成: 路径[ %s ]不在根目录[ %s ]下", p, g.root)
	}
	return key, full, nil
}
