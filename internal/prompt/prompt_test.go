package prompt

import (
	"strings"
	"testing"
)

func TestRenderDefaultTemplate(t *testing.T) {
	ctx := NewContext("C#", ".NET XML", "Foo.Bar", "public class Foo {}")

	out, err := Render(Default(), ctx)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if strings.Contains(out, "{{") || strings.Contains(out, "}}") {
		t.Errorf("rendered prompt has unresolved placeholders:\n%s", out)
	}
	for _, want := range []string{"C#", ".NET XML", "Foo.Bar", "public class Foo {}"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered prompt missing %q", want)
		}
	}
}

func TestRenderMissingPlaceholderValue(t *testing.T) {
	ctx := Context{"language": "Go"}

	_, err := Render("{{.language}} {{.docstyle}}", ctx)
	if err == nil {
		t.Fatal("expected error for missing placeholder value")
	}
}

func TestRenderInvalidTemplate(t *testing.T) {
	_, err := Render("{{.language", NewContext("Go", "godoc", "all", "code"))
	if err == nil {
		t.Fatal("expected error for unterminated placeholder")
	}
}
