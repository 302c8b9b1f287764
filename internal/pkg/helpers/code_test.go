package helpers

import "testing"

func TestGenerateUniqueCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateUniqueCode()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != UniqueCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), UniqueCodeLength)
		}
		for _, ch := range code {
			if !(ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9') {
				t.Fatalf("code %q contains non-alphanumeric %q", code, ch)
			}
		}
		seen[code] = true
	}
	// 50 collisions in a 62^8 space would mean a broken generator.
	if len(seen) < 2 {
		t.Error("generator returned the same code repeatedly")
	}
}
