package main

import (
	"encoding/binary"
	"errors"
	"fmt"

	json "github.com/bytedance/sonic"

	"unicel/contracts"
)

var SerializerError = errors.New("invalid serialized data")

// CellBinarySerializer frames a record as a 2-byte little-endian key
// length, the original (non-canonical) key, then the JSON-encoded cell.
type CellBinarySerializer struct {
}

func NewCellBinarySerializer() *CellBinarySerializer {
	return &CellBinarySerializer{}
}

func (s *CellBinarySerializer) Marshal(key string, cell *contracts.Cell) ([]byte, error) {
	payload, err := json.Marshal(cell)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", SerializerError, err)
	}

	keyBytes := []byte(key)
	serializedData := make([]byte, 0, 2+len(keyBytes)+len(payload))
	serializedData = binary.LittleEndian.AppendUint16(serializedData, uint16(len(keyBytes)))
	serializedData = append(serializedData, keyBytes...)
	serializedData = append(serializedData, payload...)
	return serializedData, nil
}

func (s *CellBinarySerializer) Unmarshal(data []byte) (key string, cell *contracts.Cell, err error) {
	if len(data) < 2 {
		return "", nil, fmt.Errorf("%w: should be more than 2 bytes (data: %v)", SerializerError, string(data))
	}

	keyLength := binary.LittleEndian.Uint16(data)
	if len(data) < int(keyLength)+2 {
		return "", nil, fmt.Errorf("%w: key size is less than bytes amount (keySize: %d; data: %v)", SerializerError, keyLength, string(data))
	}

	key = string(data[2 : keyLength+2])
	cell = &contracts.Cell{}
	if err = json.Unmarshal(data[keyLength+2:], cell); err != nil {
		return "", nil, fmt.Errorf("%w: %s", SerializerError, err)
	}
	return key, cell, nil
}
