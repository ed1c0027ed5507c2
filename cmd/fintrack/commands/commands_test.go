package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the CLI against a memory backend persisted at dataFile.
func run(t *testing.T, dataFile string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	t.Setenv("AMQP_URL", "")

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--backend", "memory", "--data-file", dataFile}, args...))

	err := execute(context.Background(), root)
	return out.String(), err
}

func TestAddAndList(t *testing.T) {
	data := filepath.Join(t.TempDir(), "ledger.json")

	out, err := run(t, data, "add", "Lunch with the team", "12.50")
	if err != nil {
		t.Fatalf("add error = %v", err)
	}
	if !strings.Contains(out, "$12.50 expense added to Food & Dining") {
		t.Errorf("add output = %q", out)
	}

	if _, err := run(t, data, "add", "Uber to the airport", "30"); err != nil {
		t.Fatalf("second add error = %v", err)
	}

	out, err = run(t, data, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	for _, want := range []string{"Recent Expenses", "Lunch with the team", "Uber to the airport", "Transportation", "Total: $42.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Uber") > strings.Index(out, "Lunch") {
		t.Errorf("list should show newest first:\n%s", out)
	}

	out, err = run(t, data, "list", "--limit", "1")
	if err != nil {
		t.Fatalf("list --limit error = %v", err)
	}
	if strings.Contains(out, "Lunch with the team") || !strings.Contains(out, "... and 1 more") {
		t.Errorf("limited list output = %q", out)
	}
}

func TestListEmpty(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "ledger.json"), "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "No expenses yet") {
		t.Errorf("list output = %q", out)
	}
}

func TestAddInvalidAmount(t *testing.T) {
	data := filepath.Join(t.TempDir(), "ledger.json")
	if _, err := run(t, data, "add", "coffee", "abc"); err == nil {
		t.Fatal("add with a non-numeric amount should fail")
	}
	if _, err := run(t, data, "add", "coffee", "0"); err == nil {
		t.Fatal("add with a zero amount should fail")
	}
	out, _ := run(t, data, "list")
	if !strings.Contains(out, "No expenses yet") {
		t.Errorf("rejected expenses were stored:\n%s", out)
	}
}

func TestSavingsCommands(t *testing.T) {
	data := filepath.Join(t.TempDir(), "ledger.json")

	out, err := run(t, data, "savings")
	if err != nil {
		t.Fatalf("savings error = %v", err)
	}
	if !strings.Contains(out, "Not set") {
		t.Errorf("savings without goal = %q", out)
	}

	out, err = run(t, data, "goal", "200")
	if err != nil {
		t.Fatalf("goal error = %v", err)
	}
	if !strings.Contains(out, "Your new savings goal is $200.00") {
		t.Errorf("goal output = %q", out)
	}

	out, err = run(t, data, "save", "40")
	if err != nil {
		t.Fatalf("save error = %v", err)
	}
	for _, want := range []string{"Added $40.00 to your savings", "20.0%", "$160.00 left to reach your goal"} {
		if !strings.Contains(out, want) {
			t.Errorf("save output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, data, "save", "200")
	if err != nil {
		t.Fatalf("save error = %v", err)
	}
	if !strings.Contains(out, "Goal achieved") {
		t.Errorf("save past goal output = %q", out)
	}

	if _, err := run(t, data, "goal", "0"); err == nil {
		t.Error("goal 0 should fail")
	}
}

func TestInsightsCommand(t *testing.T) {
	data := filepath.Join(t.TempDir(), "ledger.json")

	out, err := run(t, data, "insights")
	if err != nil {
		t.Fatalf("insights error = %v", err)
	}
	if !strings.Contains(out, "Add at least two expenses") {
		t.Errorf("empty insights output = %q", out)
	}

	for _, in := range [][2]string{{"restaurant dinner", "80"}, {"bus pass", "20"}} {
		if _, err := run(t, data, "add", in[0], in[1]); err != nil {
			t.Fatalf("add %v error = %v", in, err)
		}
	}
	out, err = run(t, data, "insights")
	if err != nil {
		t.Fatalf("insights error = %v", err)
	}
	for _, want := range []string{"$50.00", "High food spending", "Top Spending Categories", "Food & Dining"} {
		if !strings.Contains(out, want) {
			t.Errorf("insights output missing %q:\n%s", want, out)
		}
	}
}

func TestCategorizeCommand(t *testing.T) {
	data := filepath.Join(t.TempDir(), "ledger.json")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"Monthly", "internet", "bill"}, `Bills & Utilities`},
		{[]string{"Concert tickets"}, `(matched "concert")`},
		{[]string{"birthday present"}, "(no keyword matched)"},
	}
	for _, tt := range tests {
		out, err := run(t, data, append([]string{"categorize"}, tt.args...)...)
		if err != nil {
			t.Fatalf("categorize %v error = %v", tt.args, err)
		}
		if !strings.Contains(out, tt.want) {
			t.Errorf("categorize %v = %q, want %q", tt.args, out, tt.want)
		}
	}
}
