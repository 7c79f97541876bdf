package cli

import (
	"text/template"
	"time"
)

var templateFuncs = template.FuncMap{
	// ts форматирует метку в unix миллисекундах
	"ts": func(ms int64) string {
		return time.UnixMilli(ms).UTC().Format(time.RFC3339)
	},
	"when": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return t.Local().Format(time.RFC3339)
	},
}

const recordTemplate = `
ID:       {{.ID}}
Text:     "{{.Text}}"
Category: {{.Category}}
Updated:  {{ts .UpdatedAt}}
`

const conflictTemplate = `
--- Conflict {{.ID}} ---
Local:  "{{.Local.Text}}" ({{.Local.Category}}, {{ts .Local.UpdatedAt}})
Server: "{{.Remote.Text}}" ({{.Remote.Category}}, {{ts .Remote.UpdatedAt}})
`

const passTemplate = `
=== Synchronization ({{.Policy}}) ===

Added from server:     {{.Added}}
Overwritten by server: {{.ServerWins}}
Pushed to server:      {{.LocalPushed}}
{{- if .PushFailures}}
Push failures:         {{.PushFailures}}
{{- end}}
{{- if .Conflicts}}
Pending conflicts:     {{len .Conflicts}} ({{.NewConflicts}} new)
{{- end}}
Duration:              {{.Duration}}
`

const statusTemplate = `
=== Status ===

Server:            {{.Server}}
Database:          {{.Database}}
Policy:            {{.Policy}}
Last sync:         {{when .LastSyncAt}}
Local records:     {{.LocalRecords}}
Pending conflicts: {{.PendingConflicts}}
`
