package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitizeStripsScripts(t *testing.T) {
	in := `<p>Call us</p><script>alert(1)</script>`
	out := Sanitize(in)
	if strings.Contains(out, "script") {
		t.Errorf("script survived: %q", out)
	}
	if !strings.Contains(out, "<p>Call us</p>") {
		t.Errorf("benign markup should survive: %q", out)
	}
}

func TestSanitizeStripsEventHandlers(t *testing.T) {
	out := Sanitize(`<a href="https://example.com" onclick="steal()">site</a>`)
	if strings.Contains(out, "onclick") {
		t.Errorf("event handler survived: %q", out)
	}
}

func TestPlainStripsAllMarkup(t *testing.T) {
	out := Plain(`<b>Cement</b> &amp; sand`)
	if strings.Contains(out, "<") {
		t.Errorf("markup survived: %q", out)
	}
}
