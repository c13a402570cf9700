// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("").Parse(`
<table class='benchplot'>
<tbody>
<tr><th>size{{range .Labels}}<th>{{.}}{{if ne . $.Baseline}}<th>vs {{$.Baseline}}{{end}}{{end}}
{{range $row := .Rows -}}
<tr><td>{{$row.Size}}
{{- range $row.Cells -}}
{{if .Missing}}<td class='missing'>-{{else}}<td>{{.MeanString $.Unit}}{{end}}
{{- if ne .Label $.Baseline}}{{if .Compared}}<td>{{.Delta}}{{else}}<td class='nodelta'>-{{end}}{{end}}
{{- end}}
{{end -}}
</tbody>
</table>
`))

// formatHTML writes the summary as an HTML table.
func (s *summary) formatHTML(w io.Writer) error {
	return htmlTemplate.Execute(w, s)
}
