package shared

import (
	"reflect"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	orig := getRuntime
	t.Cleanup(func() { getRuntime = orig })

	tc := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"open", "https://example.test"}},
		{"linux", []string{"xdg-open", "https://example.test"}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", "https://example.test"}},
	}

	t.Setenv(BrowserEnv, "")
	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			getRuntime = func() string { return tt.goos }
			got, err := browserCommand("https://example.test")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if _, err := browserCommand("https://example.test"); err == nil {
			t.Error("expected error for unsupported platform")
		}
		if err := OpenBrowser("https://example.test"); err == nil {
			t.Error("expected OpenBrowser to fail on unsupported platform")
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv(BrowserEnv, "firefox --new-tab")
		got, _ := browserCommand("https://example.test")
		want := []string{"firefox", "--new-tab", "https://example.test"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}
