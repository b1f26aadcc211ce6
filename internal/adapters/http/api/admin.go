package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/standings/internal/domain/types"
	"golang.org/x/time/rate"
)

// multipartMemory is the part of a multipart upload kept in memory; the rest
// spills to temporary files.
const multipartMemory = 1 << 20

// AdminDependencies defines the interface for the password-gated publish flow.
type AdminDependencies interface {
	Title() string
	PublishEnabled() bool
	Authorize(password string) bool
	Publish(ctx context.Context, req types.PublishRequest) (types.PublishResult, error)
}

// AdminHandler serves the admin form and the publish action.
type AdminHandler struct {
	deps      AdminDependencies
	limiter   *rate.Limiter
	maxUpload int64
}

// NewAdminHandler creates a new admin handler. limiter is shared by every
// admin POST.
func NewAdminHandler(deps AdminDependencies, limiter *rate.Limiter, maxUpload int64) *AdminHandler {
	return &AdminHandler{deps: deps, limiter: limiter, maxUpload: maxUpload}
}

// adminState selects what the admin page shows.
type adminState string

const (
	stateLogin     adminState = "login"
	stateDenied    adminState = "denied"
	stateDisabled  adminState = "disabled"
	stateUpload    adminState = "upload"
	statePublished adminState = "published"
	stateFailed    adminState = "failed"
)

type adminPage struct {
	Title  string
	State  adminState
	Error  string
	Result types.PublishResult
	// Password is carried into the upload form once it has been accepted.
	Password string
}

// HandleAdmin handles GET /admin (password form) and POST /admin (password
// check). A wrong password renders an access denied page without the upload
// control.
func (h *AdminHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	page := adminPage{Title: h.deps.Title(), State: stateLogin}

	switch r.Method {
	case http.MethodGet:
		if !h.deps.PublishEnabled() {
			page.State = stateDisabled
		}
		renderPage(w, http.StatusOK, "admin.html", page)
	case http.MethodPost:
		if !h.limiter.Allow() {
			renderPage(w, http.StatusTooManyRequests, "admin.html", adminPage{Title: page.Title, State: stateFailed, Error: ErrRateLimited.Error()})
			return
		}
		if !h.deps.PublishEnabled() {
			page.State = stateDisabled
			renderPage(w, http.StatusForbidden, "admin.html", page)
			return
		}
		password := r.PostFormValue("password")
		if !h.deps.Authorize(password) {
			page.State = stateDenied
			renderPage(w, http.StatusUnauthorized, "admin.html", page)
			return
		}
		page.State = stateUpload
		page.Password = password
		renderPage(w, http.StatusOK, "admin.html", page)
	default:
		http.NotFound(w, r)
	}
}

// HandlePublish handles POST /admin/publish multipart uploads with the
// fields password and file. Browsers asking for HTML get the admin page;
// other clients get JSON.
func (h *AdminHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	const op = "api.publish"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	wantsHTML := strings.Contains(r.Header.Get("Accept"), "text/html")

	fail := func(status int, code string, err error) {
		if wantsHTML {
			state := stateFailed
			if status == http.StatusUnauthorized {
				state = stateDenied
			}
			renderPage(w, status, "admin.html", adminPage{Title: h.deps.Title(), State: state, Error: err.Error()})
			return
		}
		writeError(w, status, code, err)
	}

	if !h.limiter.Allow() {
		fail(http.StatusTooManyRequests, "rate_limited", NewKind(op, ErrRateLimited))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrTooLarge, err))
			return
		}
		fail(http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	password := r.FormValue("password")
	// Check the password before looking at the file so a wrong password never
	// learns anything about the upload.
	if !h.deps.Authorize(password) {
		if !h.deps.PublishEnabled() {
			fail(http.StatusForbidden, "publish_disabled", NewKind(op, types.ErrPublishDisabled))
			return
		}
		fail(http.StatusUnauthorized, "access_denied", NewKind(op, types.ErrAccessDenied))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		fail(http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.deps.Publish(r.Context(), types.PublishRequest{
		Password: password,
		Filename: header.Filename,
		Body:     file,
	})
	switch {
	case errors.Is(err, types.ErrAccessDenied):
		fail(http.StatusUnauthorized, "access_denied", Wrap(op, err))
		return
	case errors.Is(err, types.ErrPublishDisabled):
		fail(http.StatusForbidden, "publish_disabled", Wrap(op, err))
		return
	case errors.Is(err, types.ErrUnsupportedFormat):
		fail(http.StatusUnsupportedMediaType, "unsupported_format", Wrap(op, err))
		return
	case errors.Is(err, types.ErrParse):
		fail(http.StatusBadRequest, "parse_error", Wrap(op, err))
		return
	case err != nil:
		fail(http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	if wantsHTML {
		renderPage(w, http.StatusOK, "admin.html", adminPage{Title: h.deps.Title(), State: statePublished, Result: result})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
