package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	digest, err := Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if digest == "secret1" {
		t.Fatalf("digest must not equal the plaintext")
	}

	if err := Compare(digest, "secret1"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := Compare(digest, "wrong"); err == nil {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestCompare_MalformedDigest(t *testing.T) {
	if err := Compare("not-a-bcrypt-digest", "secret1"); err == nil {
		t.Fatalf("expected mismatch for malformed digest")
	}
	if err := Compare("", ""); err == nil {
		t.Fatalf("expected mismatch for empty digest")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	first, err := Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ (salt)")
	}
}
