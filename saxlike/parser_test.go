package saxlike

import (
	"encoding/xml"
	"strings"
	"testing"
)

type recorder struct {
	VoidHandler
	elements []string
	text     strings.Builder
	started  bool
	ended    bool
}

func (r *recorder) StartDocument()                  { r.started = true }
func (r *recorder) EndDocument()                    { r.ended = true }
func (r *recorder) StartElement(e xml.StartElement) { r.elements = append(r.elements, e.Name.Local) }
func (r *recorder) CharData(c xml.CharData)         { r.text.Write(c) }

func TestParse(t *testing.T) {
	handler := &recorder{}
	err := Parse(strings.NewReader("<doc><p>Hello</p><p>world</p></doc>"), handler, false)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !handler.started || !handler.ended {
		t.Error("StartDocument and EndDocument should both be called")
	}
	if got := strings.Join(handler.elements, ","); got != "doc,p,p" {
		t.Errorf("elements = %q, want %q", got, "doc,p,p")
	}
	if got := handler.text.String(); got != "Helloworld" {
		t.Errorf("text = %q, want %q", got, "Helloworld")
	}
}

func TestParseHTMLMode(t *testing.T) {
	handler := &recorder{}
	err := Parse(strings.NewReader("<html><body>Caf&eacute;<br>open</body></html>"), handler, true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := handler.text.String(); got != "Caféopen" {
		t.Errorf("text = %q, want %q", got, "Caféopen")
	}
}

func TestParseMalformed(t *testing.T) {
	handler := &recorder{}
	if err := Parse(strings.NewReader("<doc><p>unclosed</doc>"), handler, false); err == nil {
		t.Fatal("expected an error for mismatched tags")
	}
	if handler.ended {
		t.Error("EndDocument must not be called on failure")
	}
}
