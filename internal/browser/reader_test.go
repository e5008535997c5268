package browser

import "testing"

func TestIsProfileURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want bool
	}{
		{"plain profile", "https://linkedin.com/in/jane-doe", true},
		{"www subdomain", "https://www.linkedin.com/in/jane-doe/", true},
		{"regional subdomain", "https://fr.linkedin.com/in/jane-doe", true},
		{"http scheme", "http://www.linkedin.com/in/jane", true},
		{"mixed case", "HTTPS://WWW.LINKEDIN.COM/IN/JANE", true},
		{"company page", "https://www.linkedin.com/company/acme", false},
		{"feed", "https://www.linkedin.com/feed/", false},
		{"other site", "https://example.com", false},
		{"lookalike host", "https://www.linkedin.com.evil.example/in/jane", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		if got := IsProfileURL(tc.url); got != tc.want {
			t.Errorf("%s: IsProfileURL(%q) = %v, want %v", tc.name, tc.url, got, tc.want)
		}
	}
}
