package common

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexBytes enables upper-case hex encoding for byte slices that end up in
// logs, JSON and block headers.
type HexBytes []byte

// Bytes returns the underlying slice.
func (bz HexBytes) Bytes() []byte {
	return bz
}

func (bz HexBytes) String() string {
	return strings.ToUpper(hex.EncodeToString(bz))
}

// MarshalJSON implements json.Marshaler.
func (bz HexBytes) MarshalJSON() ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(bz))
	jbz := make([]byte, len(s)+2)
	jbz[0] = '"'
	copy(jbz[1:], s)
	jbz[len(jbz)-1] = '"'
	return jbz, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (bz *HexBytes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid hex string: %s", data)
	}
	bz2, err := hex.DecodeString(strings.ToLower(string(data[1 : len(data)-1])))
	if err != nil {
		return err
	}
	*bz = bz2
	return nil
}

// Format writes either address of 0th element in a slice in base 16 notation,
// or casts HexBytes to bytes and writes as hexadecimal string to s.
func (bz HexBytes) Format(s fmt.State, verb rune) {
	switch verb {
	case 'p':
		s.Write([]byte(fmt.Sprintf("%p", bz)))
	default:
		s.Write([]byte(fmt.Sprintf("%X", []byte(bz))))
	}
}
