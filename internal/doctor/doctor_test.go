package doctor

import (
	"context"
	"fmt"
	"testing"

	"github.com/jaa/yoink/internal/config"
)

func healthyChecker(t *testing.T) *Checker {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Defaults.MusicDir = t.TempDir()

	c := NewChecker(cfg)
	c.LookPath = func(name string) (string, error) {
		return "/usr/bin/" + name, nil
	}
	c.ReadVersion = func(ctx context.Context, bin string) (string, error) {
		return "2025.06.09", nil
	}
	c.CheckWritable = func(dir string) error { return nil }
	return c
}

func checkByName(t *testing.T, report Report, name string) Check {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no check named %q in %+v", name, report.Checks)
	return Check{}
}

func TestDoctorAllHealthy(t *testing.T) {
	report := healthyChecker(t).Run(context.Background())
	if !report.Healthy() {
		t.Fatalf("expected healthy report, got %+v", report.Checks)
	}
	if len(report.Checks) != 4 {
		t.Fatalf("expected 4 checks, got %d", len(report.Checks))
	}
}

func TestDoctorMissingYTDLP(t *testing.T) {
	c := healthyChecker(t)
	c.LookPath = func(name string) (string, error) {
		if name == "yt-dlp" {
			return "", fmt.Errorf("not found")
		}
		return "/usr/bin/" + name, nil
	}

	report := c.Run(context.Background())
	if report.Healthy() {
		t.Fatal("expected unhealthy report")
	}
	check := checkByName(t, report, "yt-dlp")
	if check.Status != StatusFail {
		t.Fatalf("expected fail status, got %s", check.Status)
	}
}

func TestDoctorOldYTDLPWarns(t *testing.T) {
	c := healthyChecker(t)
	c.ReadVersion = func(ctx context.Context, bin string) (string, error) {
		return "2023.03.04", nil
	}

	report := c.Run(context.Background())
	check := checkByName(t, report, "yt-dlp")
	if check.Status != StatusWarn {
		t.Fatalf("expected warn status for old version, got %s", check.Status)
	}
	if report.Healthy() != true {
		t.Fatal("warnings should not make the report unhealthy")
	}
}

func TestDoctorVersionProbeFailureWarns(t *testing.T) {
	c := healthyChecker(t)
	c.ReadVersion = func(ctx context.Context, bin string) (string, error) {
		return "", fmt.Errorf("exec format error")
	}

	report := c.Run(context.Background())
	check := checkByName(t, report, "yt-dlp")
	if check.Status != StatusWarn {
		t.Fatalf("expected warn status, got %s", check.Status)
	}
}

func TestDoctorUnwritableMusicDir(t *testing.T) {
	c := healthyChecker(t)
	c.CheckWritable = func(dir string) error {
		return fmt.Errorf("permission denied")
	}

	report := c.Run(context.Background())
	check := checkByName(t, report, "music_dir")
	if check.Status != StatusFail {
		t.Fatalf("expected fail status, got %s", check.Status)
	}
}

func TestDoctorUsesConfiguredBinaries(t *testing.T) {
	c := healthyChecker(t)
	c.Config.Tools.YTDLPBin = "my-ytdlp"

	var looked []string
	inner := c.LookPath
	c.LookPath = func(name string) (string, error) {
		looked = append(looked, name)
		return inner(name)
	}

	c.Run(context.Background())
	if len(looked) == 0 || looked[0] != "my-ytdlp" {
		t.Fatalf("expected configured binary to be probed, got %v", looked)
	}
}

func TestCompareCalendarVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024.08.06", "2024.01.01", 1},
		{"2023.12.31", "2024.01.01", -1},
		{"2024.01.01", "2024.01.01", 0},
		{"2024.01", "2024.01.01", -1},
		{"2024.01.01.1", "2024.01.01", 1},
	}
	for _, tt := range tests {
		if got := CompareCalendarVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareCalendarVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
