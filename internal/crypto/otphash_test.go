package crypto

import (
	"bytes"
	"testing"
)

func TestRandBytes_LengthAndUniqueness(t *testing.T) {
	t.Parallel()

	const n = 64
	a, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if len(a) != n {
		t.Fatalf("len=%d, want=%d", len(a), n)
	}
	b, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes(2): %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two subsequent RandBytes(%d) are equal", n)
	}
}

func TestGenerateOTP_Format(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(code) != OTPDigits {
			t.Fatalf("code %q has len %d", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q is not numeric", code)
			}
		}
	}
}

func TestHashOTP_DeterministicOnSameInput(t *testing.T) {
	t.Parallel()

	salt := []byte("NaCl-16-bytes?")
	h1 := HashOTP("1234", salt)
	h2 := HashOTP("1234", salt)
	if len(h1) == 0 || !bytes.Equal(h1, h2) {
		t.Fatalf("hash not deterministic for same input")
	}
	if bytes.Equal(h1, HashOTP("1234", []byte("another-salt----"))) {
		t.Fatalf("hash should differ when salt differs")
	}
	if bytes.Equal(h1, HashOTP("1235", salt)) {
		t.Fatalf("hash should differ when code differs")
	}
}

func TestVerifyOTP(t *testing.T) {
	t.Parallel()

	salt := []byte("salty-salt-123456")
	hash := HashOTP("0042", salt)

	if !VerifyOTP("0042", salt, hash) {
		t.Fatalf("VerifyOTP: expected true for correct code")
	}
	if VerifyOTP("42", salt, hash) {
		t.Fatalf("VerifyOTP: expected false for unpadded code")
	}
	if VerifyOTP("0042", []byte("wrong-salt"), hash) {
		t.Fatalf("VerifyOTP: expected false for wrong salt")
	}
	if VerifyOTP("", salt, hash) {
		t.Fatalf("VerifyOTP: expected false for empty code")
	}
}
