package handler

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/swaggo/swag"

	_ "github.com/maskpaint/inpaint-api/docs"
)

// annotation returns the text after "// @<name> " in the handler source.
func annotation(t *testing.T, file, name string) string {
	t.Helper()
	f, err := os.Open(file)
	if err != nil {
		t.Fatalf("open %s: %v", file, err)
	}
	defer f.Close()

	prefix := "// @" + name + " "
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if rest, ok := strings.CutPrefix(sc.Text(), prefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	t.Fatalf("no @%s in %s", name, file)
	return ""
}

func TestSwaggerDocMatchesAnnotations(t *testing.T) {
	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var doc struct {
		Paths map[string]map[string]struct {
			Summary     string `json:"summary"`
			Description string `json:"description"`
		} `json:"paths"`
	}
	if err := sonic.UnmarshalString(raw, &doc); err != nil {
		t.Fatalf("json: %v", err)
	}

	op, ok := doc.Paths["/api/inpaint"]["post"]
	if !ok {
		t.Fatalf("POST /api/inpaint missing from doc")
	}
	if want := annotation(t, "inpaint.go", "Summary"); op.Summary != want {
		t.Fatalf("summary=%q, annotation=%q", op.Summary, want)
	}
	if want := annotation(t, "inpaint.go", "Description"); op.Description != want {
		t.Fatalf("description=%q, annotation=%q", op.Description, want)
	}
}
