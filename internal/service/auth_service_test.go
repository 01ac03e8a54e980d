package service

import "testing"

func TestAuthServiceIsValidRequest(t *testing.T) {
	auth := NewAuthService("s3cret")

	cases := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "match", header: "s3cret", want: true},
		{name: "empty", header: "", want: false},
		{name: "mismatch", header: "wrong", want: false},
		{name: "prefix", header: "s3c", want: false},
		{name: "case", header: "S3CRET", want: false},
		{name: "padded", header: " s3cret", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := auth.IsValidRequest(tc.header); got != tc.want {
				t.Fatalf("IsValidRequest(%q) = %v, want %v", tc.header, got, tc.want)
			}
		})
	}
}

func TestAuthServiceWithoutSecretRejectsEverything(t *testing.T) {
	auth := NewAuthService("")
	if auth.IsValidRequest("") || auth.IsValidRequest("anything") {
		t.Fatalf("expected every request to be rejected when no secret is configured")
	}

	var nilAuth *AuthService
	if nilAuth.IsValidRequest("anything") {
		t.Fatalf("expected nil service to reject requests")
	}
}
