package crypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
	"time"
)

func TestCipher_GenerateKey_LengthAndRandomness(t *testing.T) {
	c := NewCipher()

	k1, err := c.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	k2, err := c.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}

	if len(k1) != 32 || len(k2) != 32 {
		t.Fatalf("key length = %d/%d, want 32", len(k1), len(k2))
	}
	if bytes.Equal(k1, k2) {
		t.Fatalf("expected keys to differ, but they are equal")
	}
}

func TestCipher_RoundTrip(t *testing.T) {
	c := NewCipher()
	key, _ := c.GenerateKey()

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"short", []byte("hi")},
		{"binary", []byte{0x00, 0xff, 0x10, 0x80}},
		{"large", bytes.Repeat([]byte("vault"), 10_000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := c.Encrypt(key, tt.plaintext)
			if err != nil {
				t.Fatalf("Encrypt error: %v", err)
			}
			got, err := c.Decrypt(key, blob)
			if err != nil {
				t.Fatalf("Decrypt error: %v", err)
			}
			if !bytes.Equal(got, tt.plaintext) {
				t.Fatalf("round trip mismatch")
			}
		})
	}
}

func TestCipher_EncryptIsRandomised(t *testing.T) {
	c := NewCipher()
	key, _ := c.GenerateKey()

	b1, _ := c.Encrypt(key, []byte("same"))
	b2, _ := c.Encrypt(key, []byte("same"))
	if bytes.Equal(b1, b2) {
		t.Fatalf("expected different blobs for the same plaintext")
	}
}

func TestCipher_Decrypt_WrongKey(t *testing.T) {
	c := NewCipher()
	key, _ := c.GenerateKey()
	other, _ := c.GenerateKey()

	blob, _ := c.Encrypt(key, []byte("secret"))

	got, err := c.Decrypt(other, blob)
	if !errors.Is(err, ErrCipherFailure) {
		t.Fatalf("expected ErrCipherFailure, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil plaintext on failure")
	}
}

func TestCipher_Decrypt_InvalidKeyLength(t *testing.T) {
	c := NewCipher()
	_, err := c.Decrypt([]byte("short"), make([]byte, 128))
	if !errors.Is(err, ErrCipherFailure) {
		t.Fatalf("expected ErrCipherFailure, got %v", err)
	}
}

func TestCipher_Decrypt_Truncated(t *testing.T) {
	c := NewCipher()
	key, _ := c.GenerateKey()
	blob, _ := c.Encrypt(key, []byte("secret"))

	for _, n := range []int{0, 1, headerSize, headerSize + 24, len(blob) - 1} {
		if _, err := c.Decrypt(key, blob[:n]); !errors.Is(err, ErrCipherFailure) {
			t.Fatalf("len %d: expected ErrCipherFailure, got %v", n, err)
		}
	}
}

func TestCipher_Decrypt_AnyFlippedByteFails(t *testing.T) {
	c := NewCipher()
	key, _ := c.GenerateKey()
	blob, _ := c.Encrypt(key, []byte("tamper me"))

	for i := range blob {
		tampered := bytes.Clone(blob)
		tampered[i] ^= 0x01
		if _, err := c.Decrypt(key, tampered); !errors.Is(err, ErrCipherFailure) {
			t.Fatalf("byte %d: expected ErrCipherFailure, got %v", i, err)
		}
	}
}

func TestIssuedAt(t *testing.T) {
	fixed := time.Unix(1_700_000_000, 0)
	c := &xChaChaCipher{rand: rand.Reader, now: func() time.Time { return fixed }}
	key, _ := c.GenerateKey()

	blob, err := c.Encrypt(key, []byte("x"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	ts, err := IssuedAt(blob)
	if err != nil {
		t.Fatalf("IssuedAt error: %v", err)
	}
	if !ts.Equal(fixed) {
		t.Fatalf("IssuedAt = %v, want %v", ts, fixed)
	}

	if _, err = IssuedAt([]byte{1, 2}); !errors.Is(err, ErrCipherFailure) {
		t.Fatalf("expected ErrCipherFailure for short blob, got %v", err)
	}
}
