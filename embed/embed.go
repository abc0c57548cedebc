package embed

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/shuxs/go.incdir/res"
)

const (
	resImport = "github.com/shuxs/go.incdir/res"
	chunkSize = 76
)

type tableData struct {
	Package string
	Name    string
	Import  string
	Root    string
	Entries []tableEntry
}

type tableEntry struct {
	Key     string
	Kind    string
	Size    int64
	ModTime int64
	Data    string
}

// Build renders the table and writes it to OutDir/outName, or to stdout
// when outName is "-". An empty outName means Config.Output, which New
// defaults to "<name>_gen.go".
func (g *Generator) Build(outName string) (err error) {
	if outName == "" {
		outName = g.cfg.Output
	}

	w := &bytes.Buffer{}
	if err = g.Render(w); err != nil {
		return err
	}

	if outName == "-" {
		_, err = os.Stdout.Write(w.Bytes())
		return err
	}

	target := filepath.Join(g.cfg.OutDir, outName)
	if stat, err := os.Stat(target); err == nil && stat.IsDir() {
		return fmt.Errorf("检查: 目标[ %s ]是一个目录", target)
	}
	if err = os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("生成: 创建目录出错, %w", err)
	}
	if err = os.WriteFile(target, w.Bytes(), 0644); err != nil {
		return fmt.Errorf("生成: 写入文件出错, %w", err)
	}

	g.log.Info("table written", "target", target, "files", len(g.entries), "bytes", w.Len())
	return nil
}

// Render writes the Go source declaring the table to w. Keys are emitted in
// sorted order so unchanged inputs produce identical output.
func (g *Generator) Render(w io.Writer) error {
	data := tableData{
		Package: g.cfg.Package,
		Name:    g.cfg.Name,
		Import:  resImport,
		Root:    g.cfg.PassthroughRoot,
		Entries: make([]tableEntry, 0, len(g.entries)),
	}

	keys := make([]string, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		e := g.entries[k]
		te := tableEntry{
			Key:     k,
			Kind:    e.Kind.GoString(),
			Size:    e.Size,
			ModTime: e.ModTime,
		}
		if e.Kind != res.Passthrough && len(e.Data) > 0 {
			te.Data = chunkBase64Encode(e.Data, chunkSize)
		}
		data.Entries = append(data.Entries, te)
	}

	src := &bytes.Buffer{}
	if err := goTemplate.ExecuteTemplate(src, "go", data); err != nil {
		return fmt.Errorf("生成: 执行模板出错, %w", err)
	}

	v, err := imports.Process("", src.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return fmt.Errorf("生成: 格式化出错, %w", err)
	}

	_, err = w.Write(v)
	return err
}

var goTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"passthrough": func(kind string) bool {
		return kind == res.Passthrough.GoString()
	},
	"quote": func(s string) string {
		return fmt.Sprintf("%q", s)
	},
	"raw": func(s string) string {
		return "`" + s + "`"
	},
}).Parse(`
{{ define "go" -}}
// Code generated by incdir; DO NOT EDIT.

package {{ .Package }}

import (
	"{{ .Import }}"
)

var {{ .Name }} = res.New(map[string]res.Entry{
{{- range .Entries }}
	{{ quote .Key }}: {{ template "entry" . }},
{{- end }}
}{{ if .Root }}, res.WithRoot({{ quote .Root }}){{ end }})
{{ end }}

{{ define "entry" -}}
{{ if passthrough .Kind -}}
{Kind: res.Passthrough}
{{- else -}}
{
	Kind:    {{ .Kind }},
	Size:    {{ .Size }},
	ModTime: {{ .ModTime }},
{{- if .Data }}
	Data:    res.Base64({{ raw .Data }}),
{{- end }}
}
{{- end }}
{{- end }}
`))
