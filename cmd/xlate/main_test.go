package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

// fixture copies the shapes document into a fresh directory so config
// discovery starts from a known place.
func fixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../internal/frontend/testdata/shapes.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "shapes.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--color", "off"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestDumpCommand(t *testing.T) {
	doc := fixture(t)
	out, err := execute(t, "dump", doc, "--unit", "com/example/Circle.java", "--keys")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.HasPrefix(out, "# com/example/Circle.java\n") {
		t.Fatalf("missing unit header:\n%s", out)
	}
	if strings.Contains(out, "Square") {
		t.Fatalf("--unit did not filter:\n%s", out)
	}
	if !strings.Contains(out, "Lcom/example/Circle;") {
		t.Fatalf("keys not printed:\n%s", out)
	}

	quietOut, err := execute(t, "--quiet", "dump", doc, "--unit", "com/example/Circle.java")
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(quietOut, "#") {
		t.Fatalf("--quiet kept the header")
	}
}

func TestDumpUnknownUnit(t *testing.T) {
	_, err := execute(t, "dump", fixture(t), "--unit", "Nope.java")
	if err == nil || !strings.Contains(err.Error(), "Nope.java") {
		t.Fatalf("got %v", err)
	}
}

func TestKeysCommandJSON(t *testing.T) {
	out, err := execute(t, "keys", fixture(t), "--json")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	var rows []keyRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	found := false
	for _, r := range rows {
		if r.Key == "Lcom/example/Circle;.area()D" {
			found = r.Kind == "method"
		}
	}
	if !found {
		t.Fatalf("area method missing from %v", rows)
	}
}

func TestKeysCommandUnitTable(t *testing.T) {
	out, err := execute(t, "keys", fixture(t), "--unit", "com/example/Circle.java")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !strings.Contains(out, "Lcom/example/Circle;.grow(D)V") && !strings.Contains(out, "Lcom/example/Circle;.area()D") {
		t.Fatalf("unit keys missing:\n%s", out)
	}
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", fixture(t), "--ui", "off", "--jobs", "2")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 translated, 0 cached, 0 failed") {
		t.Fatalf("summary:\n%s", out)
	}
}

func TestRunCommandUsesCache(t *testing.T) {
	doc := fixture(t)
	cacheDir := t.TempDir()
	args := []string{"run", doc, "--ui", "off", "--cache", "--cache-dir", cacheDir}
	if _, err := execute(t, args...); err != nil {
		t.Fatalf("first run: %v", err)
	}
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !strings.Contains(out, "0 translated, 2 cached, 0 failed") {
		t.Fatalf("expected cache hits:\n%s", out)
	}
}

func TestRunRejectsUnknownPass(t *testing.T) {
	_, err := execute(t, "run", fixture(t), "--ui", "off", "--passes", "inline")
	if err == nil || !strings.Contains(err.Error(), "unknown pass") {
		t.Fatalf("got %v", err)
	}
}

func TestRunReadsProjectConfig(t *testing.T) {
	doc := fixture(t)
	config := "[translate]\npasses = [\"verify\", \"bogus\"]\n"
	if err := os.WriteFile(filepath.Join(filepath.Dir(doc), configFileName), []byte(config), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "run", doc, "--ui", "off")
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("config passes not applied: %v", err)
	}
	// Flags win over the file.
	if _, err := execute(t, "run", doc, "--ui", "off", "--passes", "verify"); err != nil {
		t.Fatalf("flag override: %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "xlate" || payload.Version == "" {
		t.Fatalf("payload %+v", payload)
	}
	if _, err := execute(t, "version", "--format", "xml"); err == nil {
		t.Fatalf("xml format accepted")
	}
}
