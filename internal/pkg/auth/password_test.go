package auth

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Secret123")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "Secret123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "Secret123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "secret123") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("Secret123")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("Secret123")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}
