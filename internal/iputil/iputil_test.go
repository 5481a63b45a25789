package iputil

import "testing"

// TestIsValidIPv4_Valid tests strings that must be accepted
func TestIsValidIPv4_Valid(t *testing.T) {
	tests := []struct {
		name string
		ip   string
	}{
		{"Google DNS", "8.8.8.8"},
		{"Cloudflare DNS", "1.1.1.1"},
		{"min address", "0.0.0.0"},
		{"max address", "255.255.255.255"},
		{"loopback", "127.0.0.1"},
		{"private", "192.168.0.1"},
		{"leading zeros accepted", "08.008.8.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsValidIPv4(tt.ip) {
				t.Errorf("expected %q to be valid", tt.ip)
			}
		})
	}
}

// TestIsValidIPv4_Invalid tests strings that must be rejected
func TestIsValidIPv4_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ip   string
	}{
		{"empty string", ""},
		{"octet out of range", "8.8.8.256"},
		{"three segments", "8.8.8"},
		{"five segments", "8.8.8.8.8"},
		{"non-numeric segment", "abc.8.8.8"},
		{"trailing dot", "8.8.8.8."},
		{"empty segment", "8.8..8"},
		{"just dots", "..."},
		{"negative octet", "8.-8.8.8"},
		{"plus sign", "8.+8.8.8"},
		{"embedded space", "8.8. 8.8"},
		{"not an ip at all", "not an ip"},
		{"huge octet", "8.8.8.99999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsValidIPv4(tt.ip) {
				t.Errorf("expected %q to be invalid", tt.ip)
			}
		})
	}
}

// TestIsValidIPv4_Deterministic verifies repeated calls agree
func TestIsValidIPv4_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if !IsValidIPv4("8.8.8.8") {
			t.Fatal("expected consistent true for 8.8.8.8")
		}
		if IsValidIPv4("8.8.8.256") {
			t.Fatal("expected consistent false for 8.8.8.256")
		}
	}
}
