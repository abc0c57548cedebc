// Package res is the runtime side of go.incdir: a read-only table of files
// embedded by the generator, with transparent decompression and a
// passthrough switch that redirects every read to the live filesystem.
package res

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"maps"
	"os"
	"path"
	"path/filepath"
	"sync/atomic"
)

// Files is an immutable table of embedded files. It is safe for concurrent
// use; the passthrough flag is the only mutable state.
type Files struct {
	entries map[string]Entry      //文件表
	codecs  map[Compression]Codec //解压器
	root    string                //直读磁盘时的根目录
	through atomic.Bool           //全局直读开关
}

type Option func(f *Files)

// WithCodec registers c for kind, replacing any default.
func WithCodec(kind Compression, c Codec) Option {
	return func(f *Files) {
		f.codecs[kind] = c
	}
}

// WithoutCodec removes the codec for kind. Entries of that kind then fail
// with ErrCodecUnavailable.
func WithoutCodec(kind Compression) Option {
	return func(f *Files) {
		delete(f.codecs, kind)
	}
}

// WithRoot sets the directory filesystem reads are resolved against.
func WithRoot(dir string) Option {
	return func(f *Files) {
		f.root = dir
	}
}

// WithPassthrough sets the initial value of the passthrough override.
func WithPassthrough(enabled bool) Option {
	return func(f *Files) {
		f.through.Store(enabled)
	}
}

// New builds a table from entries. Keys are normalized with Key; if two
// keys normalize to the same value, which one survives is unspecified.
// entries is copied and may be reused.
func New(entries map[string]Entry, opts ...Option) *Files {
	f := &Files{
		entries: make(map[string]Entry, len(entries)),
		codecs:  DefaultCodecs(),
	}
	for k, e := range entries {
		f.entries[Key(k)] = e
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Available reports whether key is in the table. The passthrough override
// does not affect the result.
func (f *Files) Available(key string) bool {
	_, ok := f.entries[Key(key)]
	return ok
}

// Len returns the number of entries.
func (f *Files) Len() int {
	return len(f.entries)
}

// FileNames returns the keys of the table in no particular order. The
// sequence can be ranged over any number of times.
func (f *Files) FileNames() iter.Seq[string] {
	return maps.Keys(f.entries)
}

// SetPassthrough toggles the override that makes Get, GetRaw and Read
// ignore the table and read from the filesystem.
func (f *Files) SetPassthrough(enabled bool) {
	f.through.Store(enabled)
}

func (f *Files) Passthrough() bool {
	return f.through.Load()
}

// Get returns the original content of key. The result is the caller's to
// modify.
func (f *Files) Get(key string) ([]byte, error) {
	key = Key(key)
	if f.through.Load() {
		return f.readDisk(key)
	}

	e, ok := f.entries[key]
	if !ok {
		return nil, notFound("get", key)
	}

	switch {
	case e.Kind == None:
		return bytes.Clone(e.Data), nil
	case e.Kind == Passthrough:
		return f.readDisk(key)
	case e.Kind.compressed():
		r, err := f.decoder(key, e)
		if err != nil {
			return nil, err
		}
		defer doClose(r)
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return data, nil
	default:
		return nil, fmt.Errorf("res: get %s: %w: %s", key, ErrCodecUnavailable, e.Kind)
	}
}

// GetRaw returns the stored payload of key without decompressing it.
//
// Under the global override the file is read from disk and reported as None.
// A per-entry passthrough is also read from disk but keeps its Passthrough
// tag.
func (f *Files) GetRaw(key string) (Compression, []byte, error) {
	key = Key(key)
	if f.through.Load() {
		data, err := f.readDisk(key)
		return None, data, err
	}

	e, ok := f.entries[key]
	if !ok {
		return None, nil, notFound("getraw", key)
	}
	if e.Kind == Passthrough {
		data, err := f.readDisk(key)
		return Passthrough, data, err
	}
	return e.Kind, bytes.Clone(e.Data), nil
}

// Read returns a stream of the original content of key. Compressed entries
// are decoded as the stream is consumed. The caller must close it.
func (f *Files) Read(key string) (io.ReadCloser, error) {
	key = Key(key)
	if f.through.Load() {
		return f.openDisk(key)
	}

	e, ok := f.entries[key]
	if !ok {
		return nil, notFound("read", key)
	}

	switch {
	case e.Kind == None:
		return io.NopCloser(bytes.NewReader(e.Data)), nil
	case e.Kind == Passthrough:
		return f.openDisk(key)
	case e.Kind.compressed():
		return f.decoder(key, e)
	default:
		return nil, fmt.Errorf("res: read %s: %w: %s", key, ErrCodecUnavailable, e.Kind)
	}
}

// Stat returns metadata for key. Passthrough reads stat the file on disk.
// A key that only prefixes other keys is reported as a directory, as Open
// serves it.
func (f *Files) Stat(key string) (fs.FileInfo, error) {
	key = Key(key)
	if f.through.Load() {
		return os.Stat(f.diskPath(key))
	}

	e, ok := f.entries[key]
	if !ok {
		if f.children(key) == nil {
			return nil, notFound("stat", key)
		}
		return &fileInfo{name: path.Base(key), isDir: true}, nil
	}
	if e.Kind == Passthrough {
		return os.Stat(f.diskPath(key))
	}
	return entryInfo(key, e), nil
}

func (f *Files) decoder(key string, e Entry) (io.ReadCloser, error) {
	c, ok := f.codecs[e.Kind]
	if !ok || c == nil {
		return nil, fmt.Errorf("res: %s: %w: %s", key, ErrCodecUnavailable, e.Kind)
	}
	r, err := c.NewReader(bytes.NewReader(e.Data))
	if err != nil {
		return nil, fmt.Errorf("res: %s: %w: %w", key, ErrDecompression, err)
	}
	return &decodeReader{key: key, rc: r}, nil
}

func (f *Files) diskPath(key string) string {
	return filepath.Join(f.root, filepath.FromSlash(key))
}

func (f *Files) openDisk(key string) (io.ReadCloser, error) {
	fd, err := os.Open(f.diskPath(key))
	if err != nil {
		return nil, err
	}
	return fd, nil
}

func (f *Files) readDisk(key string) ([]byte, error) {
	return os.ReadFile(f.diskPath(key))
}

// decodeReader tags errors from the underlying decoder with ErrDecompression.
type decodeReader struct {
	key string
	rc  io.ReadCloser
}

func (r *decodeReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if err != nil && err != io.EOF {
		err = fmt.Errorf("res: %s: %w: %w", r.key, ErrDecompression, err)
	}
	return n, err
}

func (r *decodeReader) Close() error {
	return r.rc.Close()
}

func doClose(closer io.Closer) {
	_ = closer.Close()
}
