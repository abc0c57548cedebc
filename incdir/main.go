package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/pflag"

	"github.com/shuxs/go.incdir/embed"
	"github.com/shuxs/go.incdir/res"
)

const version = "0.2.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		root, outDir, pkg, varName, out string
		compression, manifest           string
		excludes, includes              []string
		passthrough, verbose            bool
		v, help                         bool
	)

	flags := pflag.NewFlagSet("incdir", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s [OPTIONS] filename/dirname...\n\n%s\n\nOptions:\n%s\n",
			filepath.Base(os.Args[0]),
			"Embed files into a Go executable",
			flags.FlagUsages())
	}

	flags.StringVar(&root, "root", os.Getenv("INCDIR_ROOT"), "项目根目录, 文件路径相对于此目录, 默认 $INCDIR_ROOT")
	flags.StringVar(&outDir, "out-dir", os.Getenv("INCDIR_OUT"), "输出目录, 默认 $INCDIR_OUT")
	flags.StringVarP(&pkg, "pkg", "p", "", "包名")
	flags.StringVar(&varName, "var", "", "变量名")
	flags.StringVarP(&out, "out", "o", "", "保存文件, - 为标准输出")
	flags.StringVarP(&compression, "compression", "c", "gzip", "压缩方式(none, gzip, zstd, passthrough)")
	flags.BoolVar(&passthrough, "passthrough", false, "不嵌入数据, 运行时读取磁盘")
	flags.StringVar(&manifest, "config", "", "配置文件(yaml)")
	flags.StringSliceVarP(&excludes, "exclude", "e", nil, "排除(正则表达式)")
	flags.StringSliceVarP(&includes, "include", "i", nil, "包含(正则表达式)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "输出详细日志")
	flags.BoolVarP(&v, "version", "V", false, "版本号")
	flags.BoolVarP(&help, "help", "h", false, "打印使用方法")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if help {
		flags.Usage()
		return nil
	}

	if v {
		fmt.Printf("incdir v%s, build with %s\n", version, runtime.Version())
		return nil
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	kind, err := res.ParseCompression(compression)
	if err != nil {
		return err
	}

	cfg := embed.Config{
		Root:        root,
		OutDir:      outDir,
		Package:     pkg,
		Name:        varName,
		Output:      out,
		Passthrough: passthrough,
		Logger:      logger,
	}

	if len(includes) > 0 || len(excludes) > 0 {
		if cfg.Matcher, err = embed.CompileMatcher(includes, excludes); err != nil {
			return err
		}
	}

	var m *embed.Manifest
	if manifest != "" {
		if m, err = embed.LoadManifest(manifest); err != nil {
			return err
		}
		if err = m.Configure(&cfg); err != nil {
			return err
		}
	}

	if m == nil && flags.NArg() == 0 {
		flags.Usage()
		return errors.New("incdir: no files or directories given")
	}

	g, err := embed.New(cfg)
	if err != nil {
		return err
	}

	eff := g.Config()
	logger.Info("generate",
		"root", eff.Root,
		"out_dir", eff.OutDir,
		"package", eff.Package,
		"var", eff.Name,
		"passthrough", eff.Passthrough,
		"include", includes,
		"exclude", excludes,
	)

	if m != nil {
		if err = m.Apply(g); err != nil {
			return err
		}
	}

	for _, p := range flags.Args() {
		if err = add(g, p, kind); err != nil {
			return err
		}
	}

	return g.Build(eff.Output)
}

func add(g *embed.Generator, p string, kind res.Compression) error {
	full := p
	if !filepath.IsAbs(full) {
		full = filepath.Join(g.Config().Root, p)
	}
	stat, err := os.Stat(full)
	if err != nil {
		return fmt.Errorf("源路径[ %s ]异常: %w", p, err)
	}
	if stat.IsDir() {
		return g.AddDir(p, kind)
	}
	return g.AddFile(p, kind)
}
