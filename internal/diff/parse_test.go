package diff

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sprite-ai/sabun/internal/syntax"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const sampleDiff = `--- a/hello.rs
+++ b/hello.rs
@@ -1,4 +1,5 @@
 fn main() {
-    println!("hello");
+    println!("hello world");
+    println!("goodbye");
     let x = 5;
 }
@@ -10,2 +11,2 @@
-// old
+// new
 done
`

func TestParse(t *testing.T) {
	got := New().Parse(sampleDiff)

	want := []Record{
		{Kind: FileHeader, Content: "--- a/hello.rs"},
		{Kind: FileHeader, Content: "+++ b/hello.rs"},
		{Kind: HunkHeader, Content: "@@ -1,4 +1,5 @@"},
		{Kind: Context, OldLine: 1, NewLine: 1, Content: "fn main() {"},
		{Kind: Removed, OldLine: 2, Content: `    println!("hello");`},
		{Kind: Added, NewLine: 2, Content: `    println!("hello world");`},
		{Kind: Added, NewLine: 3, Content: `    println!("goodbye");`},
		{Kind: Context, OldLine: 3, NewLine: 4, Content: "    let x = 5;"},
		{Kind: Context, OldLine: 4, NewLine: 5, Content: "}"},
		{Kind: HunkHeader, Content: "@@ -10,2 +11,2 @@"},
		{Kind: Removed, OldLine: 10, Content: "// old"},
		{Kind: Added, NewLine: 11, Content: "// new"},
		{Kind: Context, OldLine: 11, NewLine: 12, Content: "done"},
	}
	if diff := cmp.Diff(want, got, ignoreSpans); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, []syntax.Span{{Category: syntax.Comment, Text: "// old"}}, got[10].Spans)
	require.Equal(t, syntax.Keyword, got[3].Spans[0].Category)
}

func TestParseMalformedHunkHeaderKeepsCounters(t *testing.T) {
	input := strings.Join([]string{
		"@@ -5,2 +7,2 @@",
		" a",
		"@@ garbage @@",
		" b",
		"@@ -x,1 +y,1 @@",
		"-c",
		"@@",
		"+d",
	}, "\n")

	got := New().Parse(input)

	want := []Record{
		{Kind: HunkHeader, Content: "@@ -5,2 +7,2 @@"},
		{Kind: Context, OldLine: 5, NewLine: 7, Content: "a"},
		{Kind: HunkHeader, Content: "@@ garbage @@"},
		{Kind: Context, OldLine: 6, NewLine: 8, Content: "b"},
		{Kind: HunkHeader, Content: "@@ -x,1 +y,1 @@"},
		{Kind: Removed, OldLine: 7, Content: "c"},
		{Kind: HunkHeader, Content: "@@"},
		{Kind: Added, NewLine: 9, Content: "d"},
	}
	if diff := cmp.Diff(want, got, ignoreSpans); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHunkHeaderWithoutCounts(t *testing.T) {
	got := New().Parse("@@ -3 +4 @@ fn main\n-x\n+y\n")
	require.Equal(t, 3, got[1].OldLine)
	require.Equal(t, 4, got[2].NewLine)
}

func TestParseHunkHeaderZeroStart(t *testing.T) {
	got := New().Parse("@@ -0,0 +1,2 @@\n+a\n+b\n")
	require.Equal(t, 1, got[1].NewLine)
	require.Equal(t, 2, got[2].NewLine)
}

func TestParseProseLines(t *testing.T) {
	input := "diff --git a/x.py b/x.py\nindex 123..456 100644\n\\ No newline at end of file\n"
	got := New().Parse(input)

	require.Len(t, got, 3)
	for _, r := range got {
		require.Equal(t, Context, r.Kind)
		require.Zero(t, r.OldLine)
		require.Zero(t, r.NewLine)
	}
	require.Equal(t, "diff --git a/x.py b/x.py", got[0].Content)
}

func TestParseCRLF(t *testing.T) {
	got := New().Parse("@@ -1,1 +1,1 @@\r\n-old\r\n+new\r\n")
	require.Len(t, got, 3)
	require.Equal(t, "old", got[1].Content)
	require.Equal(t, "new", got[2].Content)
}

func TestParseEmpty(t *testing.T) {
	require.Empty(t, New().Parse(""))
}

func TestParseLanguageFromOldName(t *testing.T) {
	tok := &recordingTokenizer{}
	New(WithTokenizer(tok)).Parse("--- a/script.py\n+++ b/script.js\n@@ -1 +1 @@\n-x\n+y\n")
	require.Equal(t, []syntax.Language{"python", "python"}, tok.langs)

	tok = &recordingTokenizer{}
	New(WithTokenizer(tok)).Parse("--- /dev/null\n+++ b/script.js\n@@ -0,0 +1 @@\n+y\n")
	require.Equal(t, []syntax.Language{"javascript"}, tok.langs)
}

func TestParseRoundTripsFormat(t *testing.T) {
	f := New()
	formatted := f.Format("a\nb\nc\nd\n", "a\nB\nc\nd\ne\n", "x.c", "x.c")

	var b strings.Builder
	for _, r := range formatted {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}

	parsed := f.Parse(b.String())
	if diff := cmp.Diff(formatted, parsed); diff != "" {
		t.Errorf("Parse(Format) mismatch (-want +got):\n%s", diff)
	}
}

func TestProperty_ParseOneRecordPerLine(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		prefix := rapid.SampledFrom([]string{"", " ", "+", "-", "@@", "@@ -", "--- ", "+++ ", "#", "\\"})
		body := rapid.StringMatching(`[a-z0-9 ,+@"#/-]{0,16}`)
		n := rapid.IntRange(0, 40).Draw(rt, "n")
		lines := make([]string, n)
		for i := range lines {
			lines[i] = prefix.Draw(rt, "prefix") + body.Draw(rt, "body")
		}

		text := strings.Join(lines, "\n")
		if n > 0 {
			text += "\n"
		}

		records := New().Parse(text)
		require.Len(rt, records, n)

		for i, r := range records {
			require.Equal(rt, r.Content, syntax.Join(r.Spans))
			switch r.Kind {
			case Added:
				require.Zero(rt, r.OldLine)
				require.Positive(rt, r.NewLine)
				require.Equal(rt, lines[i][1:], r.Content)
			case Removed:
				require.Zero(rt, r.NewLine)
				require.Positive(rt, r.OldLine)
				require.Equal(rt, lines[i][1:], r.Content)
			case FileHeader, HunkHeader:
				require.Equal(rt, lines[i], r.Content)
			}
		}
	})
}
