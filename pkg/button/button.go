// Package button renders the "Open in CodeSandbox" link shown under a
// documented example.
//
// The link starts in an error state and switches to the success state only
// when the export produced a URL, so a failed export is always visible.
package button

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"github.com/matzehuels/sandboxer/pkg/pipeline"
	"github.com/matzehuels/sandboxer/pkg/story"
)

// Labels and colors of the two states.
const (
	ErrorText    = "CodeSandbox Error: See console"
	ErrorColor   = "darkred"
	SuccessText  = "Open in CodeSandbox"
	SuccessColor = "#333333"
	Target       = "_blank"
)

// Style is one inline CSS declaration.
type Style struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// BaseStyles are applied to the link in both states, in this order.
var BaseStyles = []Style{
	{"position", "absolute"},
	{"bottom", "0"},
	{"right", "90px"},
	{"border", "1px solid rgba(0,0,0,.1)"},
	{"border-bottom", "none"},
	{"border-radius", "4px 4px 0 0"},
	{"padding", "4px 10px"},
	{"background", "white"},
	{"font-family", `"Nunito Sans",-apple-system,".SFNSText-Regular","San Francisco",BlinkMacSystemFont,"Segoe UI","Helvetica Neue",Helvetica,Arial,sans-serif`},
	{"font-weight", "700"},
	{"font-size", "12px"},
	{"text-decoration", "none"},
	{"line-height", "16px"},
}

// Anchor is the link element and the container it is mounted in.
type Anchor struct {
	Selector string  `json:"selector"`
	Href     string  `json:"href,omitempty"`
	Target   string  `json:"target"`
	Text     string  `json:"text"`
	Color    string  `json:"color"`
	Styles   []Style `json:"styles"`
}

// New returns an anchor in the error state mounted at selector.
func New(selector string) *Anchor {
	return &Anchor{
		Selector: selector,
		Target:   Target,
		Text:     ErrorText,
		Color:    ErrorColor,
		Styles:   append([]Style(nil), BaseStyles...),
	}
}

// Apply switches the anchor to the success state when res has a URL.
// Failed results leave it unchanged.
func (a *Anchor) Apply(res *pipeline.Result) {
	if res == nil || !res.OK() {
		return
	}
	a.Href = res.URL
	a.Text = SuccessText
	a.Color = SuccessColor
}

// OK reports whether the anchor is in the success state.
func (a *Anchor) OK() bool {
	return a.Href != ""
}

// Style returns the inline style attribute value, color last.
func (a *Anchor) Style() string {
	var b strings.Builder
	for _, s := range a.Styles {
		b.WriteString(s.Property)
		b.WriteString(": ")
		b.WriteString(s.Value)
		b.WriteString("; ")
	}
	b.WriteString("color: ")
	b.WriteString(a.Color)
	b.WriteString(";")
	return b.String()
}

var anchorTmpl = template.Must(template.New("anchor").Parse(
	`<a{{if .Href}} href="{{.Href}}"{{end}} target="{{.Target}}" style="{{.Style}}">{{.Text}}</a>`))

type anchorView struct {
	Href   string
	Target string
	Style  template.CSS // built from constants, trusted
	Text   string
}

// HTML renders the anchor element.
func (a *Anchor) HTML() (string, error) {
	view := anchorView{Href: a.Href, Target: a.Target, Style: template.CSS(a.Style()), Text: a.Text}
	var buf bytes.Buffer
	if err := anchorTmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Exporter runs an export. *pipeline.Runner implements it.
type Exporter interface {
	Export(ctx context.Context, c story.Context, opts pipeline.Options) (*pipeline.Result, error)
}

// Decorate exports c and returns the anchor to mount for it. Stories that
// are not rendered in the docs view get no anchor and are not exported.
func Decorate(ctx context.Context, ex Exporter, c story.Context, opts pipeline.Options) (*Anchor, *pipeline.Result, error) {
	if !c.IsDocs() {
		return nil, nil, nil
	}
	a := New(c.Selector())
	res, err := ex.Export(ctx, c, opts)
	if err != nil {
		return a, nil, err
	}
	a.Apply(res)
	return a, res, nil
}
