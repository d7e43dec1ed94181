package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eringen/devopsite/content"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	created, err := Write(dir, Data{SiteName: "Acme Ops", SiteURL: "https://acme.test", Date: "2024-06-01"})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if len(created) == 0 {
		t.Fatal("Write created nothing")
	}

	for _, want := range []string{
		"devopsite.yaml",
		".env.example",
		"content/authors.yaml",
		"content/projects.yaml",
		"content/posts/welcome.md",
		"public/site.css",
	} {
		if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
			t.Errorf("missing %s: %v", want, err)
		}
	}

	cfg, err := os.ReadFile(filepath.Join(dir, "devopsite.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(cfg), `name: "Acme Ops"`) {
		t.Errorf("config not rendered:\n%s", cfg)
	}
	post, err := os.ReadFile(filepath.Join(dir, "content/posts/welcome.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(post), "publishedAt: 2024-06-01") {
		t.Errorf("post date not rendered:\n%s", post)
	}
}

func TestWriteRefusesExistingSite(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "devopsite.yaml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Write(dir, Data{}); !errors.Is(err, ErrExists) {
		t.Fatalf("Write error = %v, want ErrExists", err)
	}
}

func TestTitle(t *testing.T) {
	tests := map[string]string{"acme-ops": "Acme Ops", "acme": "Acme", "": ""}
	for in, want := range tests {
		if got := Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWrittenContentLoads(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(dir, Data{SiteName: "Acme", SiteURL: "https://acme.test", Date: "2024-06-01"}); err != nil {
		t.Fatal(err)
	}
	lib, err := content.Load(os.DirFS(filepath.Join(dir, "content")))
	if err != nil {
		t.Fatalf("starter content does not load: %v", err)
	}
	if n := len(lib.Posts()); n != 1 {
		t.Errorf("got %d posts, want 1", n)
	}
	if n := len(lib.Projects()); n != 1 {
		t.Errorf("got %d projects, want 1", n)
	}
}
