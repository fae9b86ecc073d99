package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jaa/yoink/internal/config"
	"github.com/jaa/yoink/internal/output"
)

func loadConfig(app *AppContext) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve working directory: %w", err)
	}

	cfg, err := config.Load(config.LoadOptions{
		ExplicitPath: strings.TrimSpace(app.Opts.ConfigPath),
		WorkingDir:   wd,
	})
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func isTTY(file *os.File) bool {
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// interactiveAllowed reports whether prompts and pickers may be shown.
// TTY-ness is derived from the configured input stream, not os.Stdin,
// so tests and embedders that swap IO.In get the answer they expect.
func interactiveAllowed(app *AppContext) bool {
	if app.Opts.NoInput || app.Opts.JSON {
		return false
	}
	file, ok := app.IO.In.(*os.File)
	if !ok {
		return false
	}
	return isTTY(file)
}

func newEmitter(app *AppContext) output.EventEmitter {
	if app.Opts.JSON {
		return output.NewJSONEmitter(app.IO.Out)
	}
	return output.NewHumanEmitter(app.IO.Out, app.IO.ErrOut, app.Opts.Quiet, app.Opts.Verbose)
}

// userAgent identifies us to MusicBrainz, which requires a contactable
// User-Agent from API consumers.
func userAgent(app *AppContext) string {
	version := app.Build.Version
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("yoink/%s ( https://github.com/jaa/yoink )", version)
}

func promptYesNo(app *AppContext, prompt string) (bool, error) {
	fmt.Fprintf(app.IO.Out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(app.IO.In)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response := strings.ToLower(strings.TrimSpace(line))
	return response == "y" || response == "yes", nil
}
