package response

import (
	"bytes"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/conduit-lang/hypermedia/internal/web/middleware"
	"github.com/conduit-lang/hypermedia/pkg/action"
	"github.com/conduit-lang/hypermedia/pkg/uber"
	"github.com/conduit-lang/hypermedia/pkg/web/form"
)

// RendererConfig configures the renderer
type RendererConfig struct {
	PrettyPrint bool
	// Schema declares record properties; nil derives them from struct fields
	Schema *uber.Schema
	// FormTitle is the title of HTML form pages
	FormTitle string
}

// Renderer writes resources, action descriptors and errors in the
// representation the client accepts. Representations are built
// completely before anything is written, so a failure never leaves a
// partial body behind.
type Renderer struct {
	prettyPrint bool
	flattener   *uber.Flattener
	forms       *form.Renderer
}

// NewRenderer creates a new response renderer
func NewRenderer(config RendererConfig) *Renderer {
	return &Renderer{
		prettyPrint: config.PrettyPrint,
		flattener:   uber.NewFlattener(config.Schema),
		forms:       form.NewRenderer(config.FormTitle),
	}
}

// HandlerFunc is an http handler that reports failures as errors
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler adapts fn to http.HandlerFunc, rendering returned errors with Error
func (r *Renderer) Handler(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := fn(w, req); err != nil {
			r.Error(w, req, err)
		}
	}
}

// Resource renders v as an UBER document
func (r *Renderer) Resource(w http.ResponseWriter, req *http.Request, statusCode int, v any) error {
	format, ok := Negotiate(req.Header.Get("Accept"), FormatUBER, FormatJSON)
	if !ok {
		return NewHTTPError(http.StatusNotAcceptable, "No acceptable representation")
	}

	msg, err := r.flattener.Message(v)
	if err != nil {
		return err
	}
	return r.writeMessage(w, statusCode, format, msg)
}

// Actions renders descriptors as HTML forms or as an UBER document of
// action nodes, whichever the client prefers
func (r *Renderer) Actions(w http.ResponseWriter, req *http.Request, descriptors ...*action.Descriptor) error {
	format, ok := Negotiate(req.Header.Get("Accept"), FormatUBER, FormatJSON, FormatHTML)
	if !ok {
		return NewHTTPError(http.StatusNotAcceptable, "No acceptable representation")
	}

	if format == FormatHTML {
		var buf bytes.Buffer
		if err := r.forms.Render(req.Context(), &buf, descriptors...); err != nil {
			return err
		}
		return write(w, http.StatusOK, format.ContentType(), buf.Bytes())
	}

	msg, err := uber.ActionMessage(descriptors...)
	if err != nil {
		return err
	}
	return r.writeMessage(w, http.StatusOK, format, msg)
}

// Error renders err as an UBER error message. Internal errors are logged
// with the request logger and reported without their cause.
func (r *Renderer) Error(w http.ResponseWriter, req *http.Request, err error) {
	status := StatusOf(err)
	logger := middleware.LoggerFrom(req.Context())

	message := err.Error()
	code := errorCodeFromStatus(status)
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		message, code = httpErr.Message, httpErr.Code
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err), zap.Int("status", status))
		if httpErr == nil {
			message = http.StatusText(status)
		}
	} else {
		logger.Debug("request rejected", zap.Error(err), zap.Int("status", status))
	}

	msg := uber.ErrorMessage(
		uber.ErrorField{Name: "status", Value: status},
		uber.ErrorField{Name: "code", Value: code},
		uber.ErrorField{Name: "message", Value: message},
	)

	format, ok := Negotiate(req.Header.Get("Accept"), FormatUBER, FormatJSON)
	if !ok {
		format = FormatUBER
	}
	if werr := r.writeMessage(w, status, format, msg); werr != nil {
		logger.Warn("failed to write error response", zap.Error(werr))
	}
}

func (r *Renderer) writeMessage(w http.ResponseWriter, statusCode int, format Format, msg *uber.Message) error {
	body, err := msg.MarshalIndent(r.prettyPrint)
	if err != nil {
		return err
	}
	return write(w, statusCode, format.ContentType(), body)
}

func write(w http.ResponseWriter, statusCode int, contentType string, body []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Add("Vary", "Accept")
	w.WriteHeader(statusCode)
	_, err := w.Write(body)
	return err
}
