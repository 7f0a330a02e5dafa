package model

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"hash/crc32"
)

// Binary container layout, bit-exact:
//
//	[0:4)   ASCII magic "SEMA"
//	[4]     major version
//	[5]     minor version
//	[6]     endianness flag (0x00 = little-endian)
//	[7]     model type (0x01 POS, 0x02 dependency)
//	[8:12)  payload length, uint32 LE
//	[12:+n) payload (gob-encoded model)
//	[+n:+4) CRC-32 (IEEE) of the payload, uint32 LE
//
// Structural fields of a container are untrusted until the checksum
// validates; the loader gates on magic, then version, then checksum,
// and only then decodes the payload.
const (
	Magic = "SEMA"

	MajorVersion byte = 1
	MinorVersion byte = 1

	endianLittle byte = 0x00

	headerSize   = 12
	checksumSize = 4
)

type binaryPayload struct {
	Weights    map[string]map[string]float64
	Labels     []string
	Dictionary map[string]string
	Provenance Provenance
}

// Encode serializes a validated model into a binary container.
func Encode(m *Model, modelType ModelType) ([]byte, error) {
	if modelType != ModelTypePOS && modelType != ModelTypeDep {
		return nil, &LoadError{ReasonWrongModelType, fmt.Sprintf("cannot encode model type %s", modelType)}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	var payload bytes.Buffer
	encoder := gob.NewEncoder(&payload)
	err := encoder.Encode(&binaryPayload{m.Weights, m.Labels, m.Dictionary, m.Provenance})
	if err != nil {
		return nil, &LoadError{ReasonMalformed, err.Error()}
	}

	out := make([]byte, 0, headerSize+payload.Len()+checksumSize)
	out = append(out, Magic...)
	out = append(out, MajorVersion, MinorVersion, endianLittle, byte(modelType))
	out = binary.LittleEndian.AppendUint32(out, uint32(payload.Len()))
	out = append(out, payload.Bytes()...)
	out = binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(payload.Bytes()))
	return out, nil
}

// Load verifies and decodes a binary container. Verification order is part
// of the contract: magic, then version, then checksum, then payload decode.
func Load(data []byte) (*Model, ModelType, error) {
	if len(data) < headerSize+checksumSize {
		return nil, 0, &LoadError{ReasonTruncated,
			fmt.Sprintf("container is %d bytes, shorter than the fixed header", len(data))}
	}
	if string(data[0:4]) != Magic {
		return nil, 0, &LoadError{ReasonBadMagic,
			fmt.Sprintf("unknown magic %q", string(data[0:4]))}
	}
	major, minor := data[4], data[5]
	if major != MajorVersion || minor > MinorVersion {
		return nil, 0, &LoadError{ReasonVersionIncompatible,
			fmt.Sprintf("container version %d.%d, supported %d.0-%d.%d", major, minor, MajorVersion, MajorVersion, MinorVersion)}
	}
	if data[6] != endianLittle {
		return nil, 0, &LoadError{ReasonVersionIncompatible,
			fmt.Sprintf("unsupported endianness flag 0x%02x", data[6])}
	}
	modelType := ModelType(data[7])
	if modelType != ModelTypePOS && modelType != ModelTypeDep {
		return nil, 0, &LoadError{ReasonWrongModelType,
			fmt.Sprintf("unknown model type 0x%02x", data[7])}
	}
	payload, stored, err := payloadAndChecksum(data)
	if err != nil {
		return nil, 0, err
	}
	if computed := crc32.ChecksumIEEE(payload); computed != stored {
		return nil, 0, &LoadError{ReasonChecksumMismatch,
			fmt.Sprintf("stored checksum %08x, computed %08x", stored, computed)}
	}

	var wire binaryPayload
	decoder := gob.NewDecoder(bytes.NewReader(payload))
	if err := decoder.Decode(&wire); err != nil {
		return nil, 0, &LoadError{ReasonMalformed, err.Error()}
	}
	m := &Model{wire.Weights, wire.Labels, wire.Dictionary, wire.Provenance}
	if err := m.Validate(); err != nil {
		return nil, 0, err
	}
	return m, modelType, nil
}

// LoadTyped loads a container and additionally requires the expected model
// type, so a POS model cannot be fed to the parser or vice versa.
func LoadTyped(data []byte, expected ModelType) (*Model, error) {
	m, actual, err := Load(data)
	if err != nil {
		return nil, err
	}
	if actual != expected {
		return nil, &LoadError{ReasonWrongModelType,
			fmt.Sprintf("expected a %s model, container holds %s", expected, actual)}
	}
	return m, nil
}

// VerifyChecksum reports whether the container's stored payload checksum
// matches the recomputed one. It does not gate on magic or version.
func VerifyChecksum(data []byte) bool {
	if len(data) < headerSize+checksumSize {
		return false
	}
	payload, stored, err := payloadAndChecksum(data)
	if err != nil {
		return false
	}
	return crc32.ChecksumIEEE(payload) == stored
}

func payloadAndChecksum(data []byte) ([]byte, uint32, error) {
	payloadLen := int(binary.LittleEndian.Uint32(data[8:12]))
	if headerSize+payloadLen+checksumSize != len(data) {
		return nil, 0, &LoadError{ReasonTruncated,
			fmt.Sprintf("container declares a %d-byte payload but holds %d bytes past the header",
				payloadLen, len(data)-headerSize-checksumSize)}
	}
	payload := data[headerSize : headerSize+payloadLen]
	stored := binary.LittleEndian.Uint32(data[headerSize+payloadLen:])
	return payload, stored, nil
}
