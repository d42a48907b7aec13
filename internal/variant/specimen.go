// specimen.go renders a self-contained HTML specimen page that loads
// every generated TTF via @font-face and shows the same sample text in
// each, so a generation run can be eyeballed in a browser before the
// site is deployed.
package variant

import (
	"fmt"
	"os"
	"text/template"

	"github.com/brainpowertools/vodyfont/internal/model"
)

// specimenSample is the text rendered in every variant. Vowel-heavy on
// purpose, so the treatments are visible at a glance.
const specimenSample = "A quick aeiou audit: every vowel ought to look unmistakable. AEIOU aeiou"

// The page is rendered with text/template rather than html/template:
// every interpolated value is an internal constant (variant names and
// file names), and html/template's CSS context rules reject some of the
// legitimate font-family strings.

var specimenTmpl = template.Must(template.New("specimen").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>VoDy font family specimen</title>
<style>
  body { font-family: sans-serif; margin: 2rem; max-width: 60rem; }
  h1 { font-size: 1.4rem; }
  .variant { margin: 1.5rem 0; }
  .variant h2 { font-size: 1rem; color: #555; margin: 0 0 0.25rem; }
  .sample { font-size: 1.6rem; line-height: 1.4; }
{{range .Fonts}}  @font-face { font-family: "{{.Family}}"; src: url("{{.File}}") format("truetype"); }
{{end}}</style>
</head>
<body>
<h1>VoDy font family specimen</h1>
{{range .Fonts}}<div class="variant">
  <h2>{{.Family}} &mdash; {{.Treatment}}</h2>
  <div class="sample" style="font-family: '{{.Family}}'">{{$.Sample}}</div>
</div>
{{end}}</body>
</html>
`))

// WriteSpecimen renders the specimen page for the given manifest to path.
func WriteSpecimen(path string, m Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create specimen %s", path), err)
	}
	defer f.Close()

	data := struct {
		Fonts  []ManifestFont
		Sample string
	}{Fonts: m.Fonts, Sample: specimenSample}

	if err := specimenTmpl.Execute(f, data); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to render specimen", err)
	}
	return nil
}
