package embed

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shuxs/go.incdir/res"
)

// compressFile streams fn through c into memory and returns the compressed
// bytes.
func compressFile(fn string, c res.Codec) ([]byte, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer doClose(f)

	w := &bytes.Buffer{}
	cw, err := c.NewWriter(w)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(cw, f); err != nil {
		doClose(cw)
		return nil, err
	}
	if err = cw.Close(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func chunkBase64Encode(data []byte, chunkSize int) string {
	v := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	if base64.StdEncoding.Encode(v, data); len(v) < chunkSize {
		return string(v)
	}

	w := strings.Builder{}
	w.Grow(len(v) + len(v)/chunkSize + 2)
	w.WriteRune('\n')
	for len(v) > 0 {
		n := chunkSize
		if n > len(v) {
			n = len(v)
		}
		w.Write(v[:n])
		w.WriteRune('\n')
		v = v[n:]
	}

	return w.String()
}

func doClose(closer io.Closer) {
	_ = closer.Close()
}

//驼峰命名
func hump(src string) string {
	var (
		out    = make([]rune, 0, len(src))
		needUp = true
	)
	for _, n := range src {
		if ('A' <= n && n <= 'Z') || ('a' <= n && n <= 'z') {
			if needUp && 'a' <= n && n <= 'z' {
				n -= 'a' - 'A'
			}
			needUp = false
			out = append(out, n)
		} else {
			needUp = true
		}
	}
	return string(out)
}

//下划线命名, 用作包名
func underline(src string) string {
	var (
		out  = make([]rune, 0, len(src))
		sep  = false
		prev = false
	)
	for _, n := range src {
		switch {
		case 'A' <= n && n <= 'Z':
			if prev && !sep {
				out = append(out, '_')
			}
			out = append(out, n+'a'-'A')
			sep, prev = true, true
		case ('a' <= n && n <= 'z') || ('0' <= n && n <= '9' && len(out) > 0):
			out = append(out, n)
			sep, prev = false, true
		default:
			if prev && !sep {
				out = append(out, '_')
				sep = true
			}
		}
	}
	return strings.TrimRight(string(out), "_")
}

func goIdent(name string) error {
	if name == "" {
		return fmt.Errorf("配置: 标识符为空")
	}
	for i, n := range name {
		letter := n == '_' || ('A' <= n && n <= 'Z') || ('a' <= n && n <= 'z')
		if !letter && (i == 0 || n < '0' || n > '9') {
			return fmt.Errorf("配置: [ %s ]不是合法的标识符", name)
		}
	}
	return nil
}
