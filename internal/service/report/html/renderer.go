package html

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/service/report/types"
)

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("report").Funcs(template.FuncMap{
			"severityClass": severityClass,
		}).Parse(htmlReportTemplate)),
	}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatHTML
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, templateData{ReportData: data, CSS: template.CSS(reportCSS)}); err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}

	return buf.Bytes(), nil
}

type templateData struct {
	*types.ReportData
	CSS template.CSS
}

func severityClass(s estimation.Severity) string {
	if s == estimation.SeverityWarning {
		return "flag-warning"
	}
	return "flag-info"
}

const reportCSS = `
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        .container { max-width: 960px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; }
        .header h1 { color: #2c3e50; margin-bottom: 10px; }
        .header p { color: #7f8c8d; }
        .section { margin: 30px 0; }
        .section h2 { color: #2c3e50; border-left: 4px solid #27ae60; padding-left: 15px; }
        table { width: 100%; border-collapse: collapse; margin: 15px 0; }
        th, td { padding: 10px 12px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background: #27ae60; color: white; }
        tr:nth-child(even) { background-color: #f8f9fa; }
        .flag-warning { border-left: 4px solid #f39c12; }
        .flag-info { border-left: 4px solid #3498db; }
        .note { color: #7f8c8d; font-size: 0.9em; }
`

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{ .Title }}</title>
    <style>{{ .CSS }}</style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>{{ .Title }}</h1>
        <p>Generated on {{ .Timestamps.Generated }} at {{ .Timestamps.GeneratedTime }} - estimate {{ .EstimateID }}</p>
    </div>

    <div class="section">
        <h2>Inputs</h2>
        <table>
            <tr><th>Input</th><th>Value</th></tr>
            {{- range .Inputs }}
            <tr><td>{{ .Label }}</td><td>{{ .Value }}</td></tr>
            {{- end }}
        </table>
    </div>

    <div class="section">
        <h2>Estimated outputs (illustrative)</h2>
        <table>
            <tr><th>Output</th><th>Value</th></tr>
            {{- range .Outputs }}
            <tr><td>{{ .Label }}</td><td>{{ .Value }}</td></tr>
            {{- end }}
        </table>
        <h3>Breakdown (per tonne basis)</h3>
        <table>
            <tr><th>Stage</th><th>Value</th></tr>
            {{- range .Breakdown }}
            <tr><td>{{ .Label }}</td><td>{{ .Value }}</td></tr>
            {{- end }}
        </table>
    </div>

    <div class="section">
        <h2>By-product / toxic emissions</h2>
        <p>{{ .ByProduct }}</p>
        <p>{{ .ByProductNarrative }}</p>
    </div>

    <div class="section">
        <h2>Compliance flags</h2>
        {{- if .ComplianceFlags }}
        <table>
            <tr><th>Topic</th><th>Message</th><th>Severity</th><th>Source</th></tr>
            {{- range .ComplianceFlags }}
            <tr class="{{ severityClass .Severity }}"><td>{{ .Topic }}</td><td>{{ .Message }}</td><td>{{ .Severity }}</td><td>{{ .Source }}</td></tr>
            {{- end }}
        </table>
        {{- else }}
        <p>No compliance flags raised.</p>
        {{- end }}
    </div>

    <div class="section">
        <h2>Recommendations</h2>
        <ul>
            {{- range .Recommendations }}
            <li>{{ . }}</li>
            {{- end }}
        </ul>
    </div>

    <div class="section">
        <h2>Data sources &amp; references</h2>
        <ul>
            {{- range .Sources }}
            <li><a href="{{ .URL }}">{{ .Title }}</a> ({{ .Key }})</li>
            {{- end }}
        </ul>
        <p class="note">{{ .Disclaimer }}</p>
    </div>
</div>
</body>
</html>
`
