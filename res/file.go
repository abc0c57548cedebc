package res

import (
	"encoding/base64"
	"io/fs"
	"path"
	"strings"
	"time"
)

// Entry is one table slot. Data holds the stored payload: compressed for
// Gzip and Zstd, empty for Passthrough.
type Entry struct {
	Kind    Compression //存储方式
	Data    []byte      //存储的数据
	Size    int64       //原始文件大小
	ModTime int64       //文件修改时间
}

// Base64 decodes a payload literal written by the generator. Line breaks
// inside s are ignored. It panics on malformed input.
func Base64(s string) []byte {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic("res: malformed payload: " + err.Error())
	}
	return data
}

var _ fs.FileInfo = (*fileInfo)(nil)

type fileInfo struct {
	name    string //文件名
	size    int64  //文件大小
	modTime int64  //文件修改时间
	isDir   bool   //是否目录
}

func entryInfo(key string, e Entry) *fileInfo {
	return &fileInfo{
		name:    path.Base(key),
		size:    e.Size,
		modTime: e.ModTime,
	}
}

func (f *fileInfo) Name() string {
	return f.name
}

func (f *fileInfo) Size() int64 {
	return f.size
}

func (f *fileInfo) Mode() fs.FileMode {
	if f.isDir {
		return fs.ModeDir | 0555
	}
	return 0444
}

func (f *fileInfo) ModTime() time.Time {
	return time.Unix(f.modTime, 0)
}

func (f *fileInfo) IsDir() bool {
	return f.isDir
}

func (f *fileInfo) Sys() interface{} {
	return nil
}
