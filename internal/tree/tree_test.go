package tree

import (
	"reflect"
	"testing"
)

func sampleTree(t *testing.T) *Tree {
	t.Helper()
	tr, _ := build(t,
		dir(`\`),
		dir(`\Windows`),
		dir(`\Windows\System32`),
		dir(`\Windows\System32\drivers`),
		dir(`\Users`),
		dir(`\Users\Public`),
	)
	return tr
}

func TestTreePathRoundTrip(t *testing.T) {
	tr := sampleTree(t)
	for _, p := range []string{`\`, `\Windows\`, `\Windows\System32\drivers\`, `\Users\Public\`} {
		id, ok := tr.Lookup(p)
		if !ok {
			t.Fatalf("Lookup(%q) failed", p)
		}
		if got := tr.Path(id); got != p {
			t.Errorf("Path(Lookup(%q)) = %q", p, got)
		}
	}
}

func TestTreeLookupFoldsCase(t *testing.T) {
	tr := sampleTree(t)
	id, ok := tr.Lookup(`windows/system32`)
	if !ok {
		t.Fatal("case-insensitive lookup failed")
	}
	if got := tr.Path(id); got != `\Windows\System32\` {
		t.Fatalf("canonical path = %q", got)
	}
	if _, ok := tr.Lookup(`\Windows\Missing\`); ok {
		t.Fatal("expected missing path to fail")
	}
}

func TestTreeAncestors(t *testing.T) {
	tr := sampleTree(t)
	id, _ := tr.Lookup(`\Windows\System32\drivers\`)
	var got []string
	for _, a := range tr.Ancestors(id) {
		got = append(got, tr.Path(a))
	}
	want := []string{`\`, `\Windows\`, `\Windows\System32\`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ancestors = %v, want %v", got, want)
	}
}

func TestTreeVisible(t *testing.T) {
	tr := sampleTree(t)
	win, _ := tr.Lookup(`\Windows\`)
	expanded := map[NodeID]bool{RootID: true, win: true}

	rows := tr.Visible(func(id NodeID) bool { return expanded[id] })
	var labels []string
	for _, r := range rows {
		labels = append(labels, tr.Label(r.ID))
	}
	want := []string{"Image Root", "Windows", "System32", "Users"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("visible = %v, want %v", labels, want)
	}
	if !rows[2].HasChildren || rows[2].Expanded {
		t.Fatalf("System32 row = %+v", rows[2])
	}

	collapsed := tr.Visible(nil)
	if len(collapsed) != 1 || collapsed[0].ID != RootID {
		t.Fatalf("collapsed tree should show only the root, got %+v", collapsed)
	}
}

func TestTreeParent(t *testing.T) {
	tr := sampleTree(t)
	if _, ok := tr.Parent(RootID); ok {
		t.Fatal("root has no parent")
	}
	pub, _ := tr.Lookup(`\Users\Public\`)
	parent, ok := tr.Parent(pub)
	if !ok || tr.Path(parent) != `\Users\` {
		t.Fatalf("parent of Public = %v %q", ok, tr.Path(parent))
	}
}
