package res

import "fmt"

// Compression 表示条目中数据的存储方式
type Compression uint8

const (
	None        Compression = iota // 原样存储
	Gzip                           // gzip 压缩
	Passthrough                    // 不嵌入数据, 访问时读取磁盘
	Zstd                           // zstd 压缩
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Passthrough:
		return "passthrough"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// GoString returns the identifier used for c in generated code.
func (c Compression) GoString() string {
	switch c {
	case None:
		return "res.None"
	case Gzip:
		return "res.Gzip"
	case Passthrough:
		return "res.Passthrough"
	case Zstd:
		return "res.Zstd"
	default:
		return fmt.Sprintf("res.Compression(%d)", uint8(c))
	}
}

// ParseCompression parses the names produced by String.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "passthrough":
		return Passthrough, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("res: unknown compression %q", name)
	}
}

func (c Compression) MarshalText() ([]byte, error) {
	if c > Zstd {
		return nil, fmt.Errorf("res: unknown compression %d", uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *Compression) UnmarshalText(text []byte) error {
	v, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// compressed reports whether payloads of kind c go through a codec.
func (c Compression) compressed() bool {
	return c == Gzip || c == Zstd
}
