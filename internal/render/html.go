// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package render

import (
	"html/template"
	"io"
)

// pageTemplate lays the columns out the way the dashboard does: one section
// per column, warnings above the grid.
var pageTemplate = template.Must(template.New("page").Parse(`<div class="ampboard">
{{- if .Notice}}
<p class="notice">{{.Notice}}</p>
{{- end}}
{{- if .Warnings}}
<ul class="warnings">
{{- range .Warnings}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
{{- range .Columns}}
<section class="column" data-status="{{.Status}}">
{{- if .Href}}
<h2><a href="{{.Href}}">{{.Title}}</a></h2>
{{- else}}
<h2>{{.Title}}</h2>
{{- end}}
{{- if .Notice}}
<p class="notice">{{.Notice}}</p>
{{- else}}
<ul>
{{- range .Items}}
{{.}}
{{- end}}
</ul>
{{- end}}
</section>
{{- end}}
</div>
`))

type htmlColumn struct {
	ColumnView
	Items []template.HTML
}

// WriteHTML writes page as an HTML fragment. Item markup has already been
// produced from trusted templates and escaped names, and warnings carry
// escaped column titles, so both are emitted as is. Titles and notices are
// escaped.
func WriteHTML(w io.Writer, page Page) error {
	data := struct {
		Notice   string
		Warnings []template.HTML
		Columns  []htmlColumn
	}{Notice: page.Notice}

	for _, w := range page.Warnings {
		data.Warnings = append(data.Warnings, template.HTML(w)) //nolint:gosec
	}

	for _, col := range page.Columns {
		hc := htmlColumn{ColumnView: col}
		for _, item := range col.Items {
			hc.Items = append(hc.Items, template.HTML(item)) //nolint:gosec
		}
		data.Columns = append(data.Columns, hc)
	}
	return pageTemplate.Execute(w, data)
}
