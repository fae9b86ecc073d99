package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaa/yoink/internal/config"
	"github.com/jaa/yoink/internal/doctor"
	"github.com/jaa/yoink/internal/exitcode"
)

func newDoctorCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and filesystem readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}
			if err := config.Validate(cfg); err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}

			report := doctor.NewChecker(cfg).Run(cmd.Context())

			if app.Opts.JSON {
				encoder := json.NewEncoder(app.IO.Out)
				if err := encoder.Encode(report); err != nil {
					return withExitCode(exitcode.RuntimeFailure, err)
				}
			} else {
				for _, check := range report.Checks {
					fmt.Fprintf(app.IO.Out, "[%s] %s: %s\n", check.Status, check.Name, check.Detail)
				}
			}

			if !report.Healthy() {
				return withExitCode(exitcode.MissingDependency, fmt.Errorf("doctor found failing checks"))
			}
			return nil
		},
	}
}
