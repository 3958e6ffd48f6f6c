package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseParams(t *testing.T) {
	p, err := parseParams([]string{"n_clusters=4", "init = random", "random_state=-7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p["n_clusters"] != int64(4) {
		t.Errorf("expected int64 4, got %#v", p["n_clusters"])
	}
	if p["init"] != "random" {
		t.Errorf("expected random, got %#v", p["init"])
	}
	if p["random_state"] != int64(-7) {
		t.Errorf("expected int64 -7, got %#v", p["random_state"])
	}

	for _, bad := range []string{"n_clusters", "=3"} {
		if _, err := parseParams([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestRun_Iris(t *testing.T) {
	out, err := execute(t, "run", "--dataset", "iris", "--param", "n_clusters=3")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}

	var res runOutput
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if !res.Success || len(res.Labels) != 150 || len(res.ClusterCenters) != 3 {
		t.Errorf("unexpected output %+v", res)
	}
	if res.Data != nil {
		t.Error("data should be omitted without --with-data")
	}
}

func TestRun_Upload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	raw := `[{"x":0,"y":0},{"x":0.1,"y":0},{"x":5,"y":5},{"x":5.1,"y":5}]`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "run", "--upload", path, "-p", "n_clusters=2", "--with-data", "--no-metrics")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	var res runOutput
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(res.Data) != 4 || res.DBIndex != nil {
		t.Errorf("unexpected output %+v", res)
	}
}

func TestRun_ValidationError(t *testing.T) {
	_, err := execute(t, "run", "--dataset", "iris", "--param", "n_clusters=1")
	if err == nil || !strings.Contains(err.Error(), "n_clusters") {
		t.Fatalf("expected n_clusters validation error, got %v", err)
	}
}

func TestDatasets(t *testing.T) {
	out, err := execute(t, "datasets", "--features")
	if err != nil {
		t.Fatalf("datasets: %v", err)
	}
	for _, want := range []string{"iris", "wine", "150", "178", "proline"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.csv")
	if err := os.WriteFile(path, []byte("title\nid,limit\n1,\n2,100\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "inspect", path, "--skip-rows", "1")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "2 rows") {
		t.Errorf("expected row count in output:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if got := strings.Fields(lines[len(lines)-1]); len(got) != 2 || got[0] != "limit" || got[1] != "1" {
		t.Errorf("unexpected last line %q", lines[len(lines)-1])
	}
}
