package main

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mangabatch/internal/testutil"
)

// newTestSeries builds a series folder with three volumes where only
// the first contains a decodable page. Batch folders land in the
// folder's temp parent.
func newTestSeries(t *testing.T) string {
	t.Helper()
	seriesDir := filepath.Join(t.TempDir(), "Berserk")
	if err := os.MkdirAll(seriesDir, 0755); err != nil {
		t.Fatalf("Failed to create series dir: %v", err)
	}

	page := testutil.PNGBytes(t, 200, 300, color.White)
	testutil.CreateTestCBZWithPages(t, seriesDir, "Berserk v1.cbz",
		[]string{"page1.png"}, map[string][]byte{"page1.png": page})
	testutil.CreateTestCBZ(t, seriesDir, "Berserk v2.cbz", []string{"page1.png"})
	testutil.CreateTestCBZ(t, seriesDir, "Berserk v3.cbz", []string{"page1.png"})
	return seriesDir
}

// writeTestConfig writes a config file with no remote providers, small
// batches and the bundled test font, so commands run offline.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	cfgYAML := fmt.Sprintf(`batch:
  size: 2
providers:
  order: []
fonts:
  paths:
    - %q
`, testutil.TestFontPath(t))

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(cfgYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
