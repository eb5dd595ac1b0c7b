package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/5w1tchy/library-admin/internal/reports"
	"github.com/5w1tchy/library-admin/internal/security/password"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	storeKind, dbURL, jsonOutput, outFile, topN = "", "", false, "", 5
	t.Setenv("STORE", "memory")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestExportBooksToStdout(t *testing.T) {
	out, _, err := run(t, "", "export", "books")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want header + 9", len(rows))
	}
	if strings.Join(rows[0], ",") != "ID,Title,Author,ISBN" {
		t.Fatalf("header = %v", rows[0])
	}
}

func TestExportRejectsUnknownKind(t *testing.T) {
	if _, _, err := run(t, "", "export", "loans"); err == nil {
		t.Fatal("expected error")
	}
}

func TestReportOverdueJSON(t *testing.T) {
	out, _, err := run(t, "", "report", "overdue", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var rows []reports.OverdueLoan
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatal(err)
	}
	// both seeded open loans are long past due
	if len(rows) != 2 {
		t.Fatalf("overdue = %d", len(rows))
	}
}

func TestReportTopTable(t *testing.T) {
	out, _, err := run(t, "", "report", "top", "-n", "2")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "BOOK") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestHashPasswordFromStdin(t *testing.T) {
	t.Setenv("ARGON2_MEMORY", "1024")
	t.Setenv("ARGON2_ITER", "1")
	out, _, err := run(t, "a-long-enough-passphrase\n", "hash-password")
	if err != nil {
		t.Fatal(err)
	}
	phc := strings.TrimSpace(out)
	h := password.NewHasher(password.LoadParamsFromEnv())
	if ok, _, err := h.Verify("a-long-enough-passphrase", phc); err != nil || !ok {
		t.Fatalf("verify %q: ok=%v err=%v", phc, ok, err)
	}

	if _, _, err := run(t, "short\n", "hash-password"); err == nil {
		t.Fatal("expected short password to be rejected")
	}
}

func TestHashPasswordWarnsOnAccountWords(t *testing.T) {
	t.Setenv("ARGON2_MEMORY", "1024")
	t.Setenv("ARGON2_ITER", "1")

	t.Setenv("ADMIN_EMAIL", "")
	_, errOut, err := run(t, "Adminpass123\n", "hash-password")
	if err != nil || strings.Contains(errOut, "warning") {
		t.Fatalf("no email: err=%v stderr=%q", err, errOut)
	}

	t.Setenv("ADMIN_EMAIL", "admin@ntc.edu.vn")
	out, errOut, err := run(t, "Adminpass123\n", "hash-password")
	if err != nil || !strings.Contains(errOut, "warning") {
		t.Fatalf("with email: err=%v stderr=%q", err, errOut)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "$argon2id$") {
		t.Errorf("weak password should still hash, got %q", out)
	}
}

func TestMigrateNeedsDB(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, _, err := run(t, "", "migrate"); err == nil {
		t.Fatal("expected error without --db")
	}
}
