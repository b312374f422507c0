package auth

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "" || hash == "secret1" {
		t.Fatalf("expected opaque hash, got %q", hash)
	}

	if err := CheckPassword(hash, "secret1"); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}
	if err := CheckPassword(hash, "secret2"); err == nil {
		t.Error("expected mismatched password to fail verification")
	}
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("hashing the same password twice should produce different digests")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if err := CheckPassword("not-a-bcrypt-digest", "secret1"); err == nil {
		t.Error("expected malformed hash to fail verification")
	}
}
