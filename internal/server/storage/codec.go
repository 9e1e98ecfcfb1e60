package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/OCharnyshevich/voxel-world/pkg/world/gen"
	"github.com/OCharnyshevich/voxel-world/pkg/world/overlay"
)

// encodeParams renders params as indented JSON, the same document the schema
// checks on the way back in.
func encodeParams(p gen.Params) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}
	return append(data, '\n'), nil
}

// decodeParams validates data against the params schema, decodes it and
// runs the semantic checks.
func decodeParams(data []byte) (gen.Params, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return gen.Params{}, fmt.Errorf("parse params: %w", err)
	}
	if err := paramsSchema.Validate(doc); err != nil {
		return gen.Params{}, fmt.Errorf("params schema: %w", err)
	}
	var p gen.Params
	if err := json.Unmarshal(data, &p); err != nil {
		return gen.Params{}, fmt.Errorf("parse params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return gen.Params{}, fmt.Errorf("invalid params: %w", err)
	}
	return p, nil
}

// writeOverlay streams the overlay as zstd-compressed JSON.
func writeOverlay(w io.Writer, ov *overlay.Store) error {
	if ov == nil {
		ov = overlay.New()
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := json.NewEncoder(enc).Encode(ov); err != nil {
		enc.Close()
		return fmt.Errorf("encode overlay: %w", err)
	}
	return enc.Close()
}

func readOverlay(r io.Reader) (*overlay.Store, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompress overlay: %w", err)
	}
	ov := overlay.New()
	if err := json.Unmarshal(data, ov); err != nil {
		return nil, err
	}
	return ov, nil
}

func overlayBlob(ov *overlay.Store) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeOverlay(&buf, ov); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
