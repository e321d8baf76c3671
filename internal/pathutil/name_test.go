package pathutil

import "testing"

func TestLastSignificantSeparator(t *testing.T) {
	tests := []struct {
		in    string
		want  int
		found bool
	}{
		{"", -1, false},
		{"name", -1, false},
		{"/", -1, false},
		{"//", -1, false},
		{"/a", 0, true},
		{"/a/b", 2, true},
		{"/a/b/", 2, true},
		{"a//b", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := lastSignificantSeparator(tt.in)
			if got != tt.want || ok != tt.found {
				t.Errorf("lastSignificantSeparator(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestDirname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/foo/bar", "/foo"},
		{"relative", "."},
		{"", "."},
		{"/foo", "/"},
		{"/", "/"},
		{"//", "//"},
		{"a/b", "a"},
		{"a/b/c", "a/b"},
		{"/foo//bar", "/foo"},
		{"/foo/bar/", "/foo"},
		{"//foo", "/"},
		{`a\b/c`, "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Dirname(tt.in); got != tt.want {
				t.Errorf("Dirname(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBasename(t *testing.T) {
	tests := []struct {
		in     string
		suffix string
		want   string
	}{
		{"/foo/bar", "", "bar"},
		{"/foo/bar/", "", "bar"},
		{"name", "", "name"},
		{"/", "", ""},
		{"", "", ""},
		{"/a/report.txt", "txt", "report"},
		{"/a/report.txt", ".txt", "report"},
		{"/a/report.txt", ".md", "report.txt"},
		{"/a/report.txt", ".", "report.txt"},
		{"/a/reporttxt", "txt", "reporttxt"},
		{"/a/txt", "txt", "txt"},
		{"/a/.txt", "txt", ""},
		{"/a/archive.tar.gz", "gz", "archive.tar"},
		{`dir/a\b`, "", "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.in+"|"+tt.suffix, func(t *testing.T) {
			if got := Basename(tt.in, tt.suffix); got != tt.want {
				t.Errorf("Basename(%q, %q) = %q, want %q", tt.in, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestDirnameBasenameRecombine(t *testing.T) {
	paths := []string{
		"/foo/bar",
		"/foo/bar/",
		"/a//b",
		"/foo",
		"x/y",
		"/usr/local/lib/libz.so",
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			got, err := Join(Dirname(p), Basename(p, ""))
			if err != nil {
				t.Fatalf("join: %v", err)
			}
			if want := Normalize(p); got != want {
				t.Errorf("dirname+basename of %q = %q, want %q", p, got, want)
			}
		})
	}
}
