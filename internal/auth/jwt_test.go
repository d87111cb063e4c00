package auth_test

import (
	"testing"

	"jot/internal/auth"
)

func TestJWTRoundTrip(t *testing.T) {
	j := auth.NewJWT("test-secret")

	token, err := j.Sign(42)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	uid, err := j.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if uid != 42 {
		t.Fatalf("uid = %d, want 42", uid)
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	j := auth.NewJWT("test-secret")

	if _, err := j.Verify("not.a.token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	a := auth.NewJWT("secret-a")
	b := auth.NewJWT("secret-b")

	token, err := a.Sign(7)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Verify(token); err == nil {
		t.Fatal("expected verification failure across secrets")
	}
}
