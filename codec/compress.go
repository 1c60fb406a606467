package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Zstd wraps a codec with zstd compression.
func Zstd(inner Codec) Codec {
	// Stateless options cannot fail; both return nil errors.
	enc, _ := zstd.NewWriter(nil)
	dec, _ := zstd.NewReader(nil)
	return &zstdCodec{inner: inner, enc: enc, dec: dec}
}

type zstdCodec struct {
	inner Codec
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

func (c *zstdCodec) Marshal(v any) ([]byte, error) {
	data, err := c.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	return c.enc.EncodeAll(data, nil), nil
}

func (c *zstdCodec) Unmarshal(data []byte, v any) error {
	plain, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("zstd decompress: %w", err)
	}
	return c.inner.Unmarshal(plain, v)
}

func (c *zstdCodec) Name() string { return "zstd+" + c.inner.Name() }

// LZ4 wraps a codec with lz4 frame compression.
func LZ4(inner Codec) Codec {
	return &lz4Codec{inner: inner}
}

type lz4Codec struct {
	inner Codec
}

func (c *lz4Codec) Marshal(v any) ([]byte, error) {
	data, err := c.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *lz4Codec) Unmarshal(data []byte, v any) error {
	plain, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("lz4 decompress: %w", err)
	}
	return c.inner.Unmarshal(plain, v)
}

func (c *lz4Codec) Name() string { return "lz4+" + c.inner.Name() }
