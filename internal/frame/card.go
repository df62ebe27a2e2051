package frame

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
)

const maxButtons = 4

// ActionType is the fc:frame:button action kind
type ActionType string

const (
	ActionPost ActionType = "post"
	ActionLink ActionType = "link"
	ActionTx   ActionType = "tx"
)

// Button is one interactive action on a card. Value, when set, is appended to
// Target as ?value= and comes back on the next request.
type Button struct {
	Label  string
	Action ActionType
	Target string
	Value  string
}

func (b Button) target() string {
	if b.Value == "" || b.Target == "" {
		return b.Target
	}
	sep := "?"
	if u, err := url.Parse(b.Target); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	return b.Target + sep + "value=" + url.QueryEscape(b.Value)
}

// Card is one rendered state of the flow
type Card struct {
	Title            string
	Image            string
	ImageAspectRatio string
	InputPlaceholder string
	PostURL          string
	Buttons          []Button
	BrowserLocation  string
}

type buttonView struct {
	Index  int
	Label  string
	Action ActionType
	Target string
}

type cardView struct {
	Card
	AspectRatio string
	ButtonViews []buttonView
}

var pageTemplate = template.Must(template.New("frame").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta property="og:title" content="{{.Title}}">
<meta property="og:image" content="{{.Image}}">
<meta property="fc:frame" content="vNext">
<meta property="fc:frame:image" content="{{.Image}}">
<meta property="fc:frame:image:aspect_ratio" content="{{.AspectRatio}}">
{{- if .InputPlaceholder}}
<meta property="fc:frame:input:text" content="{{.InputPlaceholder}}">
{{- end}}
{{- if .PostURL}}
<meta property="fc:frame:post_url" content="{{.PostURL}}">
{{- end}}
{{- range .ButtonViews}}
<meta property="fc:frame:button:{{.Index}}" content="{{.Label}}">
<meta property="fc:frame:button:{{.Index}}:action" content="{{.Action}}">
{{- if .Target}}
<meta property="fc:frame:button:{{.Index}}:target" content="{{.Target}}">
{{- end}}
{{- end}}
</head>
<body>
{{- if .BrowserLocation}}
<a href="{{.BrowserLocation}}">{{.Title}}</a>
{{- end}}
</body>
</html>
`))

// Write renders card as an HTML page carrying frame meta tags
func Write(w http.ResponseWriter, card Card) error {
	if len(card.Buttons) > maxButtons {
		return fmt.Errorf("card has %d buttons, max %d", len(card.Buttons), maxButtons)
	}

	view := cardView{Card: card, AspectRatio: card.ImageAspectRatio}
	if view.AspectRatio == "" {
		view.AspectRatio = "1:1"
	}
	for i, b := range card.Buttons {
		action := b.Action
		if action == "" {
			action = ActionPost
		}
		view.ButtonViews = append(view.ButtonViews, buttonView{
			Index:  i + 1,
			Label:  b.Label,
			Action: action,
			Target: b.target(),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return fmt.Errorf("render card: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError sends the error toast shown by the client
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
