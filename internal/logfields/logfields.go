package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyField      = "field"
	KeyDocID      = "doc_id"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyLabel      = "label"
	KeyClass      = "class"
	KeyPolicy     = "policy"
	KeyBranch     = "branch"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Field(f string) slog.Attr        { return slog.String(KeyField, f) }
func DocID(id string) slog.Attr       { return slog.String(KeyDocID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Label(l string) slog.Attr        { return slog.String(KeyLabel, l) }
func Class(c string) slog.Attr        { return slog.String(KeyClass, c) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func Branch(b string) slog.Attr       { return slog.String(KeyBranch, b) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
