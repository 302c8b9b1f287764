package validation

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"anna@example.com", "a.b+c@mail.example.org", "x_1@d.ru"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("%q should be valid", e)
		}
	}
	invalid := []string{"", "anna", "anna@", "@example.com", "anna@example", "a b@example.com"}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("%q should be invalid", e)
		}
	}
}

func TestIsValidUniqueCode(t *testing.T) {
	if !IsValidUniqueCode("x7Kp2mQz") {
		t.Error("x7Kp2mQz should be valid")
	}
	for _, c := range []string{"", "short", "toolongcode1", "x7Kp2mQ!"} {
		if IsValidUniqueCode(c) {
			t.Errorf("%q should be invalid", c)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	for _, p := range []string{"+79150000000", "79150000000", "1234567"} {
		if !IsValidPhone(p) {
			t.Errorf("%q should be valid", p)
		}
	}
	for _, p := range []string{"", "123456", "+7 915 000 00 00", "phone"} {
		if IsValidPhone(p) {
			t.Errorf("%q should be invalid", p)
		}
	}
}
