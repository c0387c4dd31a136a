package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Both are safe for concurrent EncodeAll/DecodeAll use.
var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	if encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault)); err != nil {
		panic(fmt.Sprintf(ErrMsgZstdInit, err))
	}
	if decoder, err = zstd.NewReader(nil); err != nil {
		panic(fmt.Sprintf(ErrMsgZstdInit, err))
	}
}

// EncodeSnapshot serializes a snapshot as zstd-compressed JSON.
func EncodeSnapshot(s domain.PlayerSnapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEncodeSnapshot, err)
	}
	return encoder.EncodeAll(raw, nil), nil
}

// DecodeSnapshot reverses EncodeSnapshot. Uncompressed JSON blobs are also
// accepted.
func DecodeSnapshot(blob []byte) (domain.PlayerSnapshot, error) {
	raw := blob
	if bytes.HasPrefix(blob, zstdMagic) {
		var err error
		if raw, err = decoder.DecodeAll(blob, nil); err != nil {
			return domain.PlayerSnapshot{}, fmt.Errorf(ErrMsgDecodeSnapshot, err)
		}
	}
	var s domain.PlayerSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.PlayerSnapshot{}, fmt.Errorf(ErrMsgDecodeSnapshot, err)
	}
	return s, nil
}
