package auth

import "testing"

func TestHashPasswordAndCheck(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash equals plaintext")
	}

	if !CheckPassword(hash, "correct horse") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong horse") {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestHashPasswordRejectsShortPasswords(t *testing.T) {
	if _, err := HashPassword("seven77"); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if _, err := HashPassword("eight888"); err != nil {
		t.Fatalf("expected 8 chars to pass, got %v", err)
	}
}

func TestCheckPasswordWithBadHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "whatever1") {
		t.Fatal("expected malformed hash to fail verification")
	}
}
