package elki

import (
	"context"
	"fmt"

	"github.com/kshimauchi/elki/blobstore"
	"github.com/kshimauchi/elki/codec"
	"github.com/kshimauchi/elki/dbscan"
)

// resultMagic identifies persisted clustering results. The header is
// self-describing: magic, codec name length, codec name, payload.
const resultMagic = "ELK1"

// SaveResult encodes result with c and writes it to store under name.
// A nil codec falls back to codec.Default. The written blob records the
// codec name so LoadResult can decode it without prior knowledge.
func SaveResult(ctx context.Context, store blobstore.Store, name string, result *dbscan.Result, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}

	payload, err := c.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	codecName := c.Name()
	if len(codecName) > 255 {
		return fmt.Errorf("codec name too long: %q", codecName)
	}

	data := make([]byte, 0, len(resultMagic)+1+len(codecName)+len(payload))
	data = append(data, resultMagic...)
	data = append(data, byte(len(codecName)))
	data = append(data, codecName...)
	data = append(data, payload...)

	return store.Put(ctx, name, data)
}

// LoadResult reads a result written by SaveResult, resolving the codec
// from the blob header.
func LoadResult(ctx context.Context, store blobstore.Store, name string) (*dbscan.Result, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, err
	}

	if len(data) < len(resultMagic)+1 || string(data[:len(resultMagic)]) != resultMagic {
		return nil, fmt.Errorf("blob %q: not a clustering result", name)
	}
	data = data[len(resultMagic):]

	nameLen := int(data[0])
	data = data[1:]
	if len(data) < nameLen {
		return nil, fmt.Errorf("blob %q: truncated header", name)
	}
	codecName := string(data[:nameLen])
	payload := data[nameLen:]

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("blob %q: unknown codec %q", name, codecName)
	}

	var result dbscan.Result
	if err := c.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &result, nil
}
