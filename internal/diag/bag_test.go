package diag

import (
	"testing"

	"oplint/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	d := Diagnostic{Rule: "CA5359", Severity: SevWarning}
	if !b.Add(d) || !b.Add(d) {
		t.Fatalf("first two adds must succeed")
	}
	if b.Add(d) {
		t.Fatalf("add beyond capacity must be rejected")
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	mk := func(file source.FileID, start uint32, rule RuleID, sev Severity) Diagnostic {
		return Diagnostic{
			Rule:     rule,
			Severity: sev,
			Primary:  source.Span{File: file, Start: start, End: start + 1},
		}
	}
	b := NewBag(10)
	b.Add(mk(1, 40, "CA2216", SevWarning))
	b.Add(mk(0, 10, "CA5359", SevWarning))
	b.Add(mk(1, 40, "CA5359", SevError))
	b.Add(mk(0, 5, "CA2216", SevWarning))
	b.Sort()

	items := b.Items()
	wantRules := []RuleID{"CA2216", "CA5359", "CA5359", "CA2216"}
	for i, want := range wantRules {
		if items[i].Rule != want {
			t.Fatalf("items[%d].Rule = %s, want %s", i, items[i].Rule, want)
		}
	}
	// same span: higher severity first
	if items[2].Severity != SevError {
		t.Fatalf("equal spans must order by severity desc")
	}
}

func TestBagDedup(t *testing.T) {
	sp := source.Span{File: 0, Start: 3, End: 9}
	b := NewBag(10)
	b.Add(Diagnostic{Rule: "CA5359", Primary: sp})
	b.Add(Diagnostic{Rule: "CA5359", Primary: sp})
	b.Add(Diagnostic{Rule: "CA2216", Primary: sp})
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("len after dedup = %d, want 2", b.Len())
	}
}

func TestFormatStable(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir(".")
	id := fs.Add("prog.cs", []byte("line one\nline two\n"))

	diags := []Diagnostic{
		{
			Rule:     "CA5359",
			Severity: SevWarning,
			Message:  "certificate validation is disabled",
			Primary:  source.Span{File: id, Start: 9, End: 13},
		},
	}
	got := FormatStable(diags, fs, false)
	want := "warning CA5359 prog.cs:2:1 certificate validation is disabled"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDescriptorMessage(t *testing.T) {
	d := &Descriptor{ID: "CA2216", MessageFormat: "type %s should declare a finalizer"}
	if got := d.Message("R"); got != "type R should declare a finalizer" {
		t.Fatalf("message = %q", got)
	}
	plain := &Descriptor{MessageFormat: "no args"}
	if plain.Message() != "no args" {
		t.Fatalf("plain message must pass through")
	}
}
