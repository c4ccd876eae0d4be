package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID   = "build_id"
	KeyStage     = "stage"
	KeyPath      = "path"
	KeyOutput    = "output"
	KeyTitle     = "title"
	KeyCount     = "count"
	KeyLink      = "link"
	KeyPermalink = "permalink"
	KeyError     = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr  { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr  { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr    { return slog.String(KeyOutput, p) }
func Title(t string) slog.Attr     { return slog.String(KeyTitle, t) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func Link(u string) slog.Attr      { return slog.String(KeyLink, u) }
func Permalink(p string) slog.Attr { return slog.String(KeyPermalink, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
