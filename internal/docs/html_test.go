package docs

import (
	"strings"
	"testing"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "scripts and styles removed with content",
			html: "<p>keep</p><script>var x = 1;</script><style>.a{color:red}</style><p>this</p>",
			want: "keep\nthis",
		},
		{
			name: "list items become bullets",
			html: "<ul><li>one</li><li>two</li></ul>",
			want: "- one\n- two",
		},
		{
			name: "headings break lines",
			html: "<h1>Title</h1><p>body text</p>",
			want: "Title\nbody text",
		},
		{
			name: "whitespace runs collapse",
			html: "<div>a   lot\t of   space</div>\n\n\n<div>next</div>",
			want: "a lot of space\nnext",
		},
		{
			name: "unknown tags stripped",
			html: "<span class=\"x\">inline</span> <b>bold</b>",
			want: "inline bold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTMLToText(tt.html)
			if got != tt.want {
				t.Errorf("HTMLToText:\n got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestHTMLToTextTrimmed(t *testing.T) {
	got := HTMLToText("  <p>  body  </p>  ")
	if strings.HasPrefix(got, " ") || strings.HasSuffix(got, " ") || strings.HasPrefix(got, "\n") {
		t.Errorf("output not trimmed: %q", got)
	}
}
