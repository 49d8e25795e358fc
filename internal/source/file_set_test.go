package source

import "testing"

func TestFileSetAddAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a/Program.cs", []byte("first\nsecond\nthird\n"))

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 12})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start = %+v, want line 2 col 1", start)
	}
	if end.Line != 2 || end.Col != 7 {
		t.Fatalf("end = %+v, want line 2 col 7", end)
	}
}

func TestFileSetGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("x.cs", []byte("alpha\nbeta\ngamma"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "alpha"},
		{2, "beta"},
		{3, "gamma"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestFileSetLatestWins(t *testing.T) {
	fs := NewFileSet()
	fs.Add("dup.cs", []byte("old"))
	fs.Add("dup.cs", []byte("new"))

	f, ok := fs.GetByPath("dup.cs")
	if !ok {
		t.Fatalf("file not found by path")
	}
	if string(f.Content) != "new" {
		t.Fatalf("content = %q, want latest version", f.Content)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Fatalf("cover = %+v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got = a.Cover(other); got != a {
		t.Fatalf("cover across files must be a no-op, got %+v", got)
	}
}
