package templates

import (
	"testing"

	"github.com/sadopc/qconsole/internal/core/environment"
	"github.com/sadopc/qconsole/internal/dsl"
)

func TestAll(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("expected templates, got none")
	}

	seen := make(map[string]bool)
	for _, tmpl := range all {
		if tmpl.Name == "" {
			t.Error("template has empty name")
		}
		if seen[tmpl.Name] {
			t.Errorf("duplicate template name %q", tmpl.Name)
		}
		seen[tmpl.Name] = true
		if tmpl.Description == "" {
			t.Errorf("template %q has empty description", tmpl.Name)
		}
		if tmpl.Snippet == "" {
			t.Errorf("template %q has empty snippet", tmpl.Name)
		}
	}
}

func TestAllSnippetsParse(t *testing.T) {
	vars := map[string]string{"collection": "demo"}
	for _, tmpl := range All() {
		d := dsl.Parse(environment.Resolve(tmpl.Snippet, vars))
		if !d.Usable() {
			t.Errorf("template %q does not parse: %s", tmpl.Name, d.Kind.Message())
		}
	}
}

func TestCategories(t *testing.T) {
	known := make(map[string]bool)
	for _, c := range Categories() {
		known[c] = true
	}
	for _, tmpl := range All() {
		if !known[tmpl.Category] {
			t.Errorf("template %q has unknown category %q", tmpl.Name, tmpl.Category)
		}
	}
	for _, c := range Categories() {
		if len(ByCategory(c)) == 0 {
			t.Errorf("category %q has no templates", c)
		}
	}
}

func TestByCategory(t *testing.T) {
	for _, tmpl := range ByCategory("Search") {
		if tmpl.Category != "Search" {
			t.Errorf("expected Search category, got %q", tmpl.Category)
		}
	}
	if none := ByCategory("NonExistent"); len(none) != 0 {
		t.Errorf("expected 0 templates for non-existent category, got %d", len(none))
	}
}

func TestByName(t *testing.T) {
	tmpl := ByName("list-collections")
	if tmpl == nil {
		t.Fatal("expected to find list-collections")
	}
	if tmpl.Snippet != "GET /collections" {
		t.Errorf("unexpected snippet %q", tmpl.Snippet)
	}
	if ByName("nope") != nil {
		t.Error("expected nil for unknown name")
	}
}
