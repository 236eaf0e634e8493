package service

import (
	"strings"
	"testing"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher()

	hash, err := h.Hash("Passw0rd")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "Passw0rd" {
		t.Fatalf("expected password to be hashed")
	}
	if !h.Verify("Passw0rd", hash) {
		t.Fatalf("correct password did not verify")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewPasswordHasher()

	first, err := h.Hash("Passw0rd")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("Passw0rd")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct salts to produce distinct hashes")
	}
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher()

	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$garbage"} {
		if h.Verify("anything", hash) {
			t.Fatalf("malformed hash %q verified", hash)
		}
	}
}

func TestPasswordHasher_EmptyPlaintext(t *testing.T) {
	h := NewPasswordHasher()

	// Input validation is the caller's job; hashing an empty string still works.
	hash, err := h.Hash("")
	if err != nil {
		t.Fatalf("Hash of empty string returned error: %v", err)
	}
	if !h.Verify("", hash) {
		t.Fatalf("empty password did not verify against its own hash")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}
}
