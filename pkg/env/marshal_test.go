package env

import (
	"strings"
	"testing"
)

func TestMarshalEnv(t *testing.T) {
	type cfg struct {
		Name    string `env:"APP_NAME"`
		Port    int    `env:"APP_PORT"`
		Debug   bool   `env:"APP_DEBUG"`
		Tagged  string `env:"APP_KEY,required,notEmpty"`
		Skipped string
		Empty   string `env:"APP_EMPTY"`
	}

	got, err := MarshalEnv(&cfg{
		Name:   "wearbot",
		Port:   8080,
		Debug:  true,
		Tagged: "secret",
	})
	if err != nil {
		t.Fatalf("MarshalEnv() failed: %v", err)
	}

	for _, want := range []string{"APP_NAME=wearbot", "APP_PORT=8080", "APP_DEBUG=true", "APP_KEY=secret"} {
		if !strings.Contains(got, want) {
			t.Errorf("MarshalEnv() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "APP_EMPTY") {
		t.Errorf("MarshalEnv() = %q, zero-value field should be omitted", got)
	}
	if strings.Contains(got, "Skipped") {
		t.Errorf("MarshalEnv() = %q, untagged field should be omitted", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("MarshalEnv() = %q, want trailing newline", got)
	}
}
