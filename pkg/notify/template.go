package notify

import "text/template"

var bodyTemplate = template.Must(template.New("bodyTemplate").Parse(
	`{{ .Name }} just dropped to ${{ .Price }}. Your target price was ${{ .Target }}. Check out the product at {{ .URL }}.`,
))
