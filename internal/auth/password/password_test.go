package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("pw123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "pw123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := Compare(hash, "pw123"); err != nil {
		t.Fatalf("Compare with correct password: %v", err)
	}

	if err := Compare(hash, "wrong"); err == nil {
		t.Fatal("Compare with wrong password should fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("pw123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := Hash("pw123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}
