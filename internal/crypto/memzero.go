package crypto

import (
	"runtime"

	"sessionkey/internal/domain"
)

// Wipe zeroes the provided buffer. This is best-effort and aims to
// reduce the chance of the compiler eliding the write.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

// WipeMaterial zeroes session key material in place.
func WipeMaterial(m *domain.SessionKeyMaterial) {
	if m == nil {
		return
	}
	Wipe(m[:])
}
