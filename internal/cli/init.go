package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaa/yoink/internal/config"
	"github.com/jaa/yoink/internal/exitcode"
	"github.com/jaa/yoink/internal/fileops"
)

func newInitCommand(app *AppContext) *cobra.Command {
	force := false

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create starter config and the music directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(app.Opts.ConfigPath)
			if path == "" {
				userPath, err := config.UserConfigPath()
				if err != nil {
					return withExitCode(exitcode.RuntimeFailure, err)
				}
				path = userPath
			}

			if err := config.EnsureConfigDir(path); err != nil {
				return withExitCode(exitcode.RuntimeFailure, err)
			}

			exists := false
			if _, err := os.Stat(path); err == nil {
				exists = true
			}

			if exists && !force {
				if app.Opts.NoInput || !isTTY(os.Stdin) {
					return withExitCode(exitcode.RuntimeFailure, fmt.Errorf("config already exists at %s (rerun with --force)", path))
				}
				confirmed, confirmErr := promptYesNo(app, fmt.Sprintf("Config already exists at %s. Overwrite?", path))
				if confirmErr != nil {
					return withExitCode(exitcode.RuntimeFailure, confirmErr)
				}
				if !confirmed {
					fmt.Fprintln(app.IO.Out, "Initialization canceled.")
					return nil
				}
			}

			if err := writeStarterConfig(path, exists); err != nil {
				return withExitCode(exitcode.RuntimeFailure, err)
			}

			musicDir, err := config.ExpandPath(config.DefaultConfig().Defaults.MusicDir)
			if err != nil {
				return withExitCode(exitcode.RuntimeFailure, fmt.Errorf("resolve music directory: %w", err))
			}
			if err := os.MkdirAll(musicDir, 0o755); err != nil {
				return withExitCode(exitcode.RuntimeFailure, fmt.Errorf("create music directory %s: %w", musicDir, err))
			}

			fmt.Fprintf(app.IO.Out, "Wrote config: %s\n", path)
			fmt.Fprintf(app.IO.Out, "Ensured music dir: %s\n", musicDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")
	return cmd
}

// writeStarterConfig writes the template. An existing config is replaced
// through a temp file so an interrupted write never leaves it truncated.
func writeStarterConfig(path string, exists bool) error {
	if !exists {
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
		return nil
	}

	temp := path + ".tmp"
	if err := os.WriteFile(temp, []byte(config.DefaultTemplate()), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := fileops.ReplaceFileSafely(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace config file: %w", err)
	}
	return nil
}
