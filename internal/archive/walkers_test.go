package archive

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	gofs "github.com/mitchellh/go-fs"
	"github.com/mitchellh/go-fs/fat"
)

type walked struct {
	path  string
	depth int
	dir   bool
}

func walkAll(t *testing.T, w Walker, file, root string, recursive bool) []walked {
	t.Helper()
	var got []walked
	err := w.Walk(context.Background(), file, 1, root, recursive, func(e fsutil.Entry) error {
		got = append(got, walked{path: e.FullPath, depth: e.Depth, dir: e.IsDir})
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", file, err)
	}
	return got
}

func TestSevenZipWalkerSynthesisesDirectories(t *testing.T) {
	// layout.7z lists docs/img/logo.png, bin/, docs/readme.txt, docs/ in
	// that order, with no entry for docs/img.
	file := filepath.Join("testdata", "layout.7z")

	want := []walked{
		{`\`, 0, true},
		{`\docs`, 1, true},
		{`\docs\img`, 2, true},
		{`\docs\img\logo.png`, 3, false},
		{`\docs\readme.txt`, 2, false},
		{`\bin`, 1, true},
	}
	if got := walkAll(t, NewSevenZipWalker(), file, fsutil.RootPath, true); !reflect.DeepEqual(got, want) {
		t.Fatalf("walk = %v, want %v", got, want)
	}

	scoped := walkAll(t, NewSevenZipWalker(), file, `\docs`, false)
	wantScoped := []walked{
		{`\docs`, 1, true},
		{`\docs\img`, 2, true},
		{`\docs\readme.txt`, 2, false},
	}
	if !reflect.DeepEqual(scoped, wantScoped) {
		t.Fatalf("scoped walk = %v, want %v", scoped, wantScoped)
	}
}

func TestSevenZipFixtureIsSniffed(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "layout.7z"))
	if err != nil {
		t.Fatal(err)
	}
	if got := sniffFormat(data); got != FormatSevenZ {
		t.Fatalf("sniffFormat = %q, want %q", got, FormatSevenZ)
	}
}

// formatFloppy writes an empty FAT12 floppy with DOCS\IMG and BOOT.
func formatFloppy(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "floppy.img")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err := f.Truncate(1440 * 1024); err != nil {
		t.Fatal(err)
	}

	device, err := gofs.NewFileDisk(f)
	if err != nil {
		t.Fatalf("NewFileDisk: %v", err)
	}
	cfg := &fat.SuperFloppyConfig{FATType: fat.FAT12, Label: "RWIM", OEMName: "RWIM"}
	if err := fat.FormatSuperFloppy(device, cfg); err != nil {
		t.Fatalf("FormatSuperFloppy: %v", err)
	}
	filesystem, err := fat.New(device)
	if err != nil {
		t.Fatalf("fat.New: %v", err)
	}
	root, err := filesystem.RootDir()
	if err != nil {
		t.Fatalf("RootDir: %v", err)
	}

	docs, err := root.AddDirectory("DOCS")
	if err != nil {
		t.Fatalf("add DOCS: %v", err)
	}
	docsDir, err := docs.Dir()
	if err != nil {
		t.Fatalf("open DOCS: %v", err)
	}
	if _, err := docsDir.AddDirectory("IMG"); err != nil {
		t.Fatalf("add DOCS\\IMG: %v", err)
	}
	if _, err := root.AddDirectory("BOOT"); err != nil {
		t.Fatalf("add BOOT: %v", err)
	}
	return path
}

func TestFATWalkerListsNestedDirectories(t *testing.T) {
	file := formatFloppy(t)

	var dirs []walked
	for _, w := range walkAll(t, NewFATWalker(), file, fsutil.RootPath, true) {
		if fsutil.Base(w.path) == "." || fsutil.Base(w.path) == ".." {
			t.Fatalf("dot entry emitted: %s", w.path)
		}
		if w.dir {
			dirs = append(dirs, w)
		}
	}

	want := []walked{
		{`\`, 0, true},
		{`\DOCS`, 1, true},
		{`\DOCS\IMG`, 2, true},
		{`\BOOT`, 1, true},
	}
	if !reflect.DeepEqual(dirs, want) {
		t.Fatalf("directories = %v, want %v", dirs, want)
	}
}

func TestFATWalkerScopesToDirectory(t *testing.T) {
	file := formatFloppy(t)

	got := walkAll(t, NewFATWalker(), file, `\DOCS`, false)
	want := []walked{
		{`\DOCS`, 1, true},
		{`\DOCS\IMG`, 2, true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("scoped walk = %v, want %v", got, want)
	}
}

func TestCleanFATName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DOCS", "DOCS"},
		{"\x00\x00DOCS\x00\uffff\uffff", "DOCS"},
		{"long name.txt\x00", "long name.txt"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanFATName(tt.in); got != tt.want {
			t.Errorf("cleanFATName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
