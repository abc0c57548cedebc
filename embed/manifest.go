package embed

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/shuxs/go.incdir/res"
)

// Manifest describes one generated table in YAML:
//
//	package: assets
//	var: Files
//	output: files_gen.go
//	exclude: ['\.DS_Store$']
//	entries:
//	  - dir: static
//	    compression: gzip
//	  - file: README.md
type Manifest struct {
	Package     string          `yaml:"package"`     //包名
	Name        string          `yaml:"var"`         //变量名
	Output      string          `yaml:"output"`      //目标文件名
	Passthrough bool            `yaml:"passthrough"` //全部直读磁盘
	Include     []string        `yaml:"include"`     //包含(正则表达式)
	Exclude     []string        `yaml:"exclude"`     //排除(正则表达式)
	MaxDepth    int             `yaml:"max_depth"`   //扫描目录最深
	Entries     []ManifestEntry `yaml:"entries"`
}

type ManifestEntry struct {
	Dir         string          `yaml:"dir,omitempty"`
	File        string          `yaml:"file,omitempty"`
	Compression res.Compression `yaml:"compression"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(fn string) (*Manifest, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("配置: 读取[ %s ]出错, %w", fn, err)
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("配置: 解析出错, %w", err)
	}
	for i, e := range m.Entries {
		if (e.Dir == "") == (e.File == "") {
			return nil, fmt.Errorf("配置: entries[%d] 需要且只能指定 dir 或 file", i)
		}
	}
	return m, nil
}

// Configure copies the manifest's settings into cfg. Fields already set in
// cfg win over the manifest.
func (m *Manifest) Configure(cfg *Config) error {
	if cfg.Package == "" {
		cfg.Package = m.Package
	}
	if cfg.Name == "" {
		cfg.Name = m.Name
	}
	if cfg.Output == "" {
		cfg.Output = m.Output
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = m.MaxDepth
	}
	cfg.Passthrough = cfg.Passthrough || m.Passthrough

	if cfg.Matcher == nil && (len(m.Include) > 0 || len(m.Exclude) > 0) {
		matcher, err := CompileMatcher(m.Include, m.Exclude)
		if err != nil {
			return err
		}
		cfg.Matcher = matcher
	}
	return nil
}

// Apply adds every manifest entry to g.
func (m *Manifest) Apply(g *Generator) error {
	for _, e := range m.Entries {
		var err error
		if e.Dir != "" {
			err = g.AddDir(e.Dir, e.Compression)
		} else {
			err = g.AddFile(e.File, e.Compression)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	var regs []*regexp.Regexp
	for _, expr := range exprs {
		r, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("配置: 正则表达式[ %s ]错误, %w", expr, err)
		}
		regs = append(regs, r)
	}
	return regs, nil
}

// CompileMatcher builds a RegexpMatcher from expression strings.
func CompileMatcher(includes, excludes []string) (Matcher, error) {
	in, err := compileAll(includes)
	if err != nil {
		return nil, err
	}
	ex, err := compileAll(excludes)
	if err != nil {
		return nil, err
	}
	return RegexpMatcher(in, ex), nil
}
