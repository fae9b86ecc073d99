package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInteractiveAllowed(t *testing.T) {
	regular := openRegularFile(t)

	tests := []struct {
		name string
		app  AppContext
		want bool
	}{
		{
			name: "no-input disables prompts",
			app:  AppContext{IO: IOStreams{In: regular}, Opts: GlobalOptions{NoInput: true}},
		},
		{
			name: "json disables prompts",
			app:  AppContext{IO: IOStreams{In: regular}, Opts: GlobalOptions{JSON: true}},
		},
		{
			name: "non-file input is not a terminal",
			app:  AppContext{IO: IOStreams{In: strings.NewReader("1\n")}},
		},
		{
			name: "regular file input is not a terminal",
			app:  AppContext{IO: IOStreams{In: regular}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interactiveAllowed(&tt.app); got != tt.want {
				t.Errorf("interactiveAllowed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func openRegularFile(t *testing.T) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input")
	if err := os.WriteFile(path, []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { file.Close() })
	return file
}
