package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

const (
	background = "#1A1A1A"
	accent     = "#8A63D2"
	foreground = "#FFFFFF"
	muted      = "#A0A0A0"
)

// Profile is the recipient card shown on review and send
type Profile struct {
	AvatarURL string
	Name      string
	Handle    string
	Bio       string
	Followers string
	Subtitle  string
	Summary   *SendSummary
}

// SendSummary is the amount block of the send card
type SendSummary struct {
	Amount   string
	Currency string
	Chain    string
	Received string
	LogoURL  string
}

// Status is the two-party transaction card
type Status struct {
	FromAvatar string
	FromName   string
	ToAvatar   string
	ToName     string
	Received   string
	Label      string
	Color      string
}

type page struct {
	Background string
	Accent     string
	Foreground string
	Muted      string
	Body       any
}

var templates = template.Must(template.New("initial").Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="600" height="600" viewBox="0 0 600 600">
<rect width="600" height="600" fill="{{.Background}}"/>
<text x="300" y="250" text-anchor="middle" font-family="Poppins, sans-serif" font-size="44" font-weight="700" fill="{{.Foreground}}">Pay anyone</text>
<text x="300" y="310" text-anchor="middle" font-family="Poppins, sans-serif" font-size="26" fill="{{.Muted}}">with any token on any chain</text>
<text x="300" y="380" text-anchor="middle" font-family="Poppins, sans-serif" font-size="22" fill="{{.Accent}}">Enter a username or address</text>
</svg>
`))

func init() {
	template.Must(templates.New("profile").Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="600" height="600" viewBox="0 0 600 600">
<rect width="600" height="600" fill="{{.Background}}"/>
{{with .Body}}
<image x="230" y="40" width="140" height="140" href="{{.AvatarURL}}"/>
<text x="300" y="225" text-anchor="middle" font-family="Poppins, sans-serif" font-size="34" font-weight="700" fill="{{$.Foreground}}">{{.Name}}</text>
<text x="300" y="260" text-anchor="middle" font-family="Poppins, sans-serif" font-size="22" fill="{{$.Muted}}">@{{.Handle}} · {{.Followers}} followers</text>
<text x="300" y="300" text-anchor="middle" font-family="Poppins, sans-serif" font-size="20" fill="{{$.Foreground}}">{{.Bio}}</text>
{{with .Summary}}
<image x="180" y="340" width="48" height="48" href="{{.LogoURL}}"/>
<text x="240" y="375" font-family="Poppins, sans-serif" font-size="32" font-weight="700" fill="{{$.Foreground}}">{{.Amount}} {{.Currency}}</text>
<text x="300" y="420" text-anchor="middle" font-family="Poppins, sans-serif" font-size="22" fill="{{$.Muted}}">on {{.Chain}}</text>
<text x="300" y="470" text-anchor="middle" font-family="Poppins, sans-serif" font-size="24" fill="{{$.Accent}}">They receive {{.Received}} ETH</text>
{{end}}
<text x="300" y="550" text-anchor="middle" font-family="Poppins, sans-serif" font-size="20" fill="{{$.Accent}}">{{.Subtitle}}</text>
{{end}}
</svg>
`))
	template.Must(templates.New("status").Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="600" height="600" viewBox="0 0 600 600">
<rect width="600" height="600" fill="{{.Background}}"/>
{{with .Body}}
<image x="90" y="150" width="140" height="140" href="{{.FromAvatar}}"/>
<image x="370" y="150" width="140" height="140" href="{{.ToAvatar}}"/>
<text x="300" y="230" text-anchor="middle" font-family="Poppins, sans-serif" font-size="40" fill="{{$.Foreground}}">→</text>
<text x="160" y="325" text-anchor="middle" font-family="Poppins, sans-serif" font-size="22" fill="{{$.Muted}}">{{.FromName}}</text>
<text x="440" y="325" text-anchor="middle" font-family="Poppins, sans-serif" font-size="22" fill="{{$.Muted}}">{{.ToName}}</text>
<text x="300" y="400" text-anchor="middle" font-family="Poppins, sans-serif" font-size="30" font-weight="700" fill="{{$.Foreground}}">{{.Received}} ETH</text>
<text x="300" y="460" text-anchor="middle" font-family="Poppins, sans-serif" font-size="26" fill="{{.Color}}">{{.Label}}</text>
{{end}}
</svg>
`))
}

// Renderer draws card images as SVG
type Renderer struct {
	assetBase string
}

// NewRenderer creates a renderer whose icons are served from assetBase
func NewRenderer(assetBase string) *Renderer {
	return &Renderer{assetBase: assetBase}
}

// ContentType of every image the renderer produces
const ContentType = "image/svg+xml"

// Initial draws the landing card
func (r *Renderer) Initial(w io.Writer) error {
	return r.execute(w, "initial", nil)
}

// Profile draws a recipient card. Long bios are truncated and the name is
// shortened to its first word.
func (r *Renderer) Profile(w io.Writer, p Profile) error {
	p.Name = FirstName(p.Name)
	p.Bio = TruncateBio(p.Bio)
	if p.Summary != nil && p.Summary.LogoURL == "" {
		s := *p.Summary
		s.LogoURL = LogoURL(r.assetBase, s.Chain, s.Currency)
		p.Summary = &s
	}
	return r.execute(w, "profile", p)
}

// Status draws a processing, success or failure card between two users.
// An empty Color falls back to the accent color.
func (r *Renderer) Status(w io.Writer, s Status) error {
	s.FromName = FirstName(s.FromName)
	s.ToName = FirstName(s.ToName)
	if s.Color == "" {
		s.Color = accent
	}
	return r.execute(w, "status", s)
}

func (r *Renderer) execute(w io.Writer, name string, body any) error {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, name, page{
		Background: background,
		Accent:     accent,
		Foreground: foreground,
		Muted:      muted,
		Body:       body,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}
