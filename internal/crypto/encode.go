package crypto

import "github.com/ethereum/go-ethereum/common/hexutil"

// Hex returns the 0x-prefixed hex encoding of b.
func Hex(b []byte) string { return hexutil.Encode(b) }

// FromHex decodes a 0x-prefixed hex string.
func FromHex(s string) ([]byte, error) { return hexutil.Decode(s) }
