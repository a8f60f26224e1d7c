package cmd

import "testing"

func TestOpenBrowserRejectsBadSchemes(t *testing.T) {
	tests := []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"ftp://example.com",
		"://not-a-url",
	}
	for _, raw := range tests {
		if err := openBrowser(raw); err == nil {
			t.Errorf("openBrowser(%q): expected error", raw)
		}
	}
}
