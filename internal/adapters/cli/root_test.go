package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(&out, &errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "", "categories")
	if err != nil {
		t.Fatalf("categories error = %v", err)
	}
	if out != "Category 1\nCategory 2\nCategory 3\nCategory 4\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTranslateCommand(t *testing.T) {
	out, err := run(t, "", "translate", "--category", "Category 2", "--flash-point", "-4", "--boiling-point", "133")
	if err != nil {
		t.Fatalf("translate error = %v", err)
	}
	var rating domain.NFPARating
	if err := json.Unmarshal([]byte(out), &rating); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if !rating.Classified || rating.NFPAClass != "Class IB" || rating.Flammability != 3 {
		t.Fatalf("unexpected rating %+v", rating)
	}
}

func TestTranslateWithCustomRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	rules := `ghs_to_nfpa:
  Custom:
    - rule: {}
      output:
        nfpa_class: Class X
        nfpa_flammability: 1
        fire_code_type: Test
        flash_point_description: any
        boiling_point_description: any
`
	if err := os.WriteFile(path, []byte(rules), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	out, err := run(t, "", "--rules", path, "translate", "--category", "Custom")
	if err != nil {
		t.Fatalf("translate error = %v", err)
	}
	if !strings.Contains(out, `"nfpa_class": "Class X"`) {
		t.Fatalf("expected custom rule output, got %s", out)
	}

	if _, err := run(t, "", "--rules", filepath.Join(t.TempDir(), "missing.yaml"), "categories"); err == nil {
		t.Fatalf("expected error for missing rules file")
	}
}

func TestTranslateRequiresCategory(t *testing.T) {
	if _, err := run(t, "", "translate", "--flash-point", "10"); err == nil {
		t.Fatalf("expected missing flag error")
	}
}

func TestExtractFromStdin(t *testing.T) {
	out, err := run(t, "Signal word: Danger\nH225 Highly flammable liquid and vapour.\nGHS02", "extract", "-")
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}
	var info domain.HazardInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if info.SignalWord != domain.SignalDanger || len(info.Pictograms) != 1 || !info.Flammable {
		t.Fatalf("unexpected extraction %+v", info)
	}
}

func TestExtractRejectsUnreadablePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 garbage"), 0o600); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	_, err := run(t, "", "extract", path)
	if !domain.IsKind(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected source unavailable, got %v", err)
	}
}
