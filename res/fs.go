package res

import (
	"bytes"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"
)

var _ http.FileSystem = (*Files)(nil)

// Open implements http.FileSystem. Directories are derived from the keys,
// so http.FileServer can list and serve the table.
func (f *Files) Open(name string) (http.File, error) {
	key := Key(name)

	if f.through.Load() {
		return http.Dir(f.diskRoot()).Open("/" + key)
	}

	if e, ok := f.entries[key]; ok {
		if e.Kind == Passthrough {
			return http.Dir(f.diskRoot()).Open("/" + key)
		}
		data, err := f.Get(key)
		if err != nil {
			return nil, err
		}
		return &httpFile{
			info:   entryInfo(key, e),
			Reader: bytes.NewReader(data),
		}, nil
	}

	children := f.children(key)
	if children == nil {
		return nil, notFound("open", key)
	}
	return &httpFile{
		info:     &fileInfo{name: path.Base(key), isDir: true},
		Reader:   bytes.NewReader(nil),
		children: children,
	}, nil
}

// children lists the direct children of dir, or nil when no key lives
// under it.
func (f *Files) children(dir string) []fs.FileInfo {
	prefix := dir + "/"
	if dir == "." {
		prefix = ""
	}

	seen := make(map[string]bool)
	var fis []fs.FileInfo
	for key, e := range f.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		name, _, nested := strings.Cut(rest, "/")
		if seen[name] {
			continue
		}
		seen[name] = true
		if nested {
			fis = append(fis, &fileInfo{name: name, isDir: true})
		} else {
			fis = append(fis, entryInfo(key, e))
		}
	}

	sort.Slice(fis, func(i, j int) bool {
		return fis[i].Name() < fis[j].Name()
	})
	return fis
}

func (f *Files) diskRoot() string {
	if f.root == "" {
		return "."
	}
	return f.root
}
