package res

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec is a stream compressor/decompressor for one Compression kind.
type Codec interface {
	NewWriter(w io.Writer) (io.WriteCloser, error)
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// DefaultCodecs returns a fresh registry holding the codecs compiled into
// this package.
func DefaultCodecs() map[Compression]Codec {
	return map[Compression]Codec{
		Gzip: GzipCodec{Level: gzip.BestCompression},
		Zstd: ZstdCodec{Level: zstd.SpeedBestCompression},
	}
}

type GzipCodec struct {
	Level int //压缩级别
}

func (c GzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	level := c.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	gw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, err
	}
	return gw, nil
}

func (c GzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return gr, nil
}

type ZstdCodec struct {
	Level zstd.EncoderLevel //压缩级别
}

func (c ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	level := c.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}
	// empty inputs still get a frame so the payload is never zero length
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level), zstd.WithZeroFrames(true))
	if err != nil {
		return nil, err
	}
	return enc, nil
}

func (c ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
