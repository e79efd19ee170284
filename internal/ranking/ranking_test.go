package ranking

import (
	"slices"
	"testing"
)

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestCompare_keys(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
		want int
	}{
		{
			name: "higher score first",
			a:    Key{Value: "a", Matched: true, Score: 10, Index: -1},
			b:    Key{Value: "b", Matched: true, Score: 20, Index: -1},
			want: 1,
		},
		{
			name: "match before no match",
			a:    Key{Value: "a", Matched: false, Index: -1},
			b:    Key{Value: "b", Matched: true, Score: -50, Index: -1},
			want: 1,
		},
		{
			name: "earlier index first",
			a:    Key{Value: "aaaa", Matched: true, Score: 5, Index: 1},
			b:    Key{Value: "bbbb", Matched: true, Score: 5, Index: 3},
			want: -1,
		},
		{
			name: "absent index sorts after present",
			a:    Key{Value: "aaaa", Matched: true, Score: 5, Index: -1},
			b:    Key{Value: "bbbb", Matched: true, Score: 5, Index: 3},
			want: 1,
		},
		{
			name: "shorter first",
			a:    Key{Value: "abc", Matched: true, Score: 5, Index: 0},
			b:    Key{Value: "ab", Matched: true, Score: 5, Index: 0},
			want: 1,
		},
		{
			name: "collation before bytes",
			a:    Key{Value: "xb", Index: -1, collation: []byte{1}},
			b:    Key{Value: "xa", Index: -1, collation: []byte{2}},
			want: -1,
		},
		{
			name: "byte order when collation ties",
			a:    Key{Value: "xb", Index: -1, collation: []byte{1}},
			b:    Key{Value: "xa", Index: -1, collation: []byte{1}},
			want: 1,
		},
		{
			name: "identical",
			a:    Key{Value: "same", Index: -1},
			b:    Key{Value: "same", Index: -1},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sign(Compare(tt.a, tt.b)); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRanker_localeAwareOrdering(t *testing.T) {
	r := NewRanker("zzz")
	// Byte order puts "Bravo" first; collation ignores case at the primary level.
	if got := r.Compare("apple", "Bravo"); got >= 0 {
		t.Errorf("Compare(apple, Bravo) = %d, want < 0", got)
	}
}

func TestSort_scoreOrdering(t *testing.T) {
	items := []string{"axbxc", "abcxx"}
	Sort(items, "abc")
	if items[0] != "abcxx" {
		t.Errorf("Sort = %v, want adjacent match first", items)
	}
}

func TestSort_deterministicAcrossInputOrder(t *testing.T) {
	base := []string{
		"file:///p/src/main.go",
		"file:///p/src/mux.go",
		"file:///p/README.md",
		"file:///p/internal/a/m_a_i_n.go",
		"file:///p/cmd/Main.go",
		"file:///p/cmd/main.go",
	}
	want := slices.Clone(base)
	Sort(want, "main")

	reversed := slices.Clone(base)
	slices.Reverse(reversed)
	Sort(reversed, "main")
	if !slices.Equal(want, reversed) {
		t.Errorf("order depends on input order:\n%v\n%v", want, reversed)
	}

	rotated := append(slices.Clone(base[3:]), base[:3]...)
	Sort(rotated, "main")
	if !slices.Equal(want, rotated) {
		t.Errorf("order depends on input order:\n%v\n%v", want, rotated)
	}
}

func TestCompare_transitiveAndAntisymmetric(t *testing.T) {
	items := []string{
		"file:///w/a.txt",
		"file:///w/A.txt",
		"file:///w/ab.txt",
		"file:///w/b/a.txt",
		"file:///w/abc",
		"file:///w/xaxbxc",
		"file:///w/cab",
		"file:///w/été.txt",
		"file:///w/ete.txt",
	}
	r := NewRanker("ab")
	keys := make([]Key, len(items))
	for i, it := range items {
		keys[i] = r.Key(it)
	}
	for _, a := range keys {
		if Compare(a, a) != 0 {
			t.Errorf("Compare(%q, itself) != 0", a.Value)
		}
		for _, b := range keys {
			ab, ba := sign(Compare(a, b)), sign(Compare(b, a))
			if ab != -ba {
				t.Errorf("antisymmetry broken for %q, %q: %d vs %d", a.Value, b.Value, ab, ba)
			}
			for _, c := range keys {
				if Compare(a, b) < 0 && Compare(b, c) < 0 && Compare(a, c) >= 0 {
					t.Errorf("transitivity broken: %q < %q < %q but not %q < %q",
						a.Value, b.Value, c.Value, a.Value, c.Value)
				}
			}
		}
	}
}

func TestSort_smallInputs(t *testing.T) {
	Sort(nil, "x")
	one := []string{"only"}
	Sort(one, "x")
	if one[0] != "only" {
		t.Errorf("single item changed: %v", one)
	}
}
