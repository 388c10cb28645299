package argon2id

import (
	"errors"
	"strings"
	"testing"
)

var testParams = Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  8,
	KeyLength:   16,
}

func TestEncode(t *testing.T) {
	salt := []byte("saltsalt")
	got := testParams.encode("secret", salt)
	if !strings.HasPrefix(got, "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$") {
		t.Errorf("unexpected encoding %q", got)
	}
	if again := testParams.encode("secret", salt); again != got {
		t.Errorf("encoding is not deterministic for a fixed salt: %q != %q", again, got)
	}
}

func TestHash_FreshSalt(t *testing.T) {
	a, err := testParams.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	b, err := testParams.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password share a salt")
	}
}

func TestDecode(t *testing.T) {
	d, err := Decode(testParams.encode("secret", []byte("saltsalt")))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if d.Params != testParams {
		t.Errorf("params = %+v, want %+v", d.Params, testParams)
	}
	if string(d.Salt) != "saltsalt" {
		t.Errorf("salt = %q", d.Salt)
	}
	if len(d.Key) != int(testParams.KeyLength) {
		t.Errorf("key length = %d, want %d", len(d.Key), testParams.KeyLength)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{name: "empty", encoded: "", wantErr: ErrInvalidHash},
		{name: "wrong algorithm", encoded: "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrInvalidHash},
		{name: "leading garbage", encoded: "x$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrInvalidHash},
		{name: "wrong version", encoded: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrIncompatibleVersion},
		{name: "bad costs", encoded: "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrInvalidHash},
		{name: "bad salt", encoded: "$argon2id$v=19$m=1024,t=1,p=1$!!$aGFzaA", wantErr: ErrInvalidHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoded)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	encoded, err := testParams.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	ok, err := Verify("correct horse", encoded)
	if err != nil || !ok {
		t.Errorf("Verify(correct) = %v, %v; want true, nil", ok, err)
	}

	ok, err = Verify("wrong horse", encoded)
	if err != nil || ok {
		t.Errorf("Verify(wrong) = %v, %v; want false, nil", ok, err)
	}

	if _, err := Verify("x", "not-a-hash"); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("Verify(malformed) error = %v, want %v", err, ErrInvalidHash)
	}
}
