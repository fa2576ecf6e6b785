package common

import (
	"errors"
	"net/http"

	"github.com/pgddui/pgddui/internal/extension"
	"github.com/pgddui/pgddui/internal/ui/pages"
	"github.com/pgddui/pgddui/pkg/core"
)

// StatusFor maps a domain error to its HTTP status.
//
// A data-source failure wins over a missing extension, since a failed
// version probe wraps both.
func StatusFor(err error) int {
	var outdated *extension.OutdatedError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, core.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDataSourceUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &outdated), errors.Is(err, extension.ErrExtensionMissing):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// ErrorInfo builds the error page content for err.
func (d *Deps) ErrorInfo(err error) *pages.ErrorInfo {
	status := StatusFor(err)
	info := &pages.ErrorInfo{
		Status:  status,
		Title:   http.StatusText(status),
		Message: err.Error(),
	}

	var outdated *extension.OutdatedError
	switch {
	case status == http.StatusServiceUnavailable:
		info.Message = "The database is unavailable. Check the connection settings and try again."
	case errors.As(err, &outdated):
		info.Installed = outdated.Installed.String()
		info.Required = outdated.Required.String()
	case status == http.StatusNotImplemented:
		info.Message = "The PgDD extension is not installed in this database."
		info.Installed = "not installed"
		if d.Gate != nil {
			info.Required = d.Gate.MinSupportedVersion().String()
		}
	case status == http.StatusNotFound:
		info.Message = "There is no such page in this data dictionary."
	}
	return info
}

// RenderError logs err and renders the matching error page.
func (d *Deps) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		d.Log().Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		d.Log().Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}

	data := pages.PageData{Title: http.StatusText(status), Error: d.ErrorInfo(err)}
	if status != http.StatusServiceUnavailable {
		data = d.PageData(r, http.StatusText(status), "")
		data.Error = d.ErrorInfo(err)
	}
	d.Render(w, r, status, pages.PageError, data)
}

// NotFound renders the 404 page.
func (d *Deps) NotFound(w http.ResponseWriter, r *http.Request) {
	d.RenderError(w, r, core.ErrUnknownKind)
}

// RequireExtension rejects requests until the extension version check passes.
func (d *Deps) RequireExtension(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := d.Gate.Check(r.Context()); err != nil {
			d.RenderError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
