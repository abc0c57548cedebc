package res

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"net/http"
)

var _ http.File = &httpFile{}

type httpFile struct {
	*bytes.Reader
	info     *fileInfo     //文件信息
	children []fs.FileInfo //目录内容
	offset   int           //Readdir 位置
}

func (f *httpFile) Close() error {
	return nil
}

func (f *httpFile) Readdir(count int) ([]fs.FileInfo, error) {
	if !f.info.isDir {
		return nil, fmt.Errorf("res.Readdir: '%s' is not directory", f.info.name)
	}

	rest := f.children[f.offset:]
	if count <= 0 {
		f.offset = len(f.children)
		return rest, nil
	}

	if len(rest) == 0 {
		return nil, io.EOF
	}

	limit := count
	if limit > len(rest) {
		limit = len(rest)
	}
	f.offset += limit
	return rest[:limit], nil
}

func (f *httpFile) Stat() (fs.FileInfo, error) {
	return f.info, nil
}
