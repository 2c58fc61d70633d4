package codeinterpreter

import (
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// MIMEType labels the format of a single output payload, e.g. "image/png".
// It is used only as a mapping key and is never validated against a registry.
type MIMEType string

// Well-known MIME types that get extracted into named Result fields.
const (
	MIMETextPlain             MIMEType = "text/plain"
	MIMETextHTML              MIMEType = "text/html"
	MIMETextMarkdown          MIMEType = "text/markdown"
	MIMEImageSVG              MIMEType = "image/svg+xml"
	MIMEImagePNG              MIMEType = "image/png"
	MIMEImageJPEG             MIMEType = "image/jpeg"
	MIMEApplicationPDF        MIMEType = "application/pdf"
	MIMETextLaTeX             MIMEType = "text/latex"
	MIMEApplicationJSON       MIMEType = "application/json"
	MIMEApplicationJavaScript MIMEType = "application/javascript"
)

// ErrMissingText reports that a kernel output record arrived without the
// mandatory "text/plain" representation. Every kernel output format
// guarantees a plain-text fallback, so its absence means the upstream
// kernel response is malformed.
var ErrMissingText = errors.New("output data has no text/plain representation")

var wellKnownTypes = mapset.NewThreadUnsafeSet(
	MIMETextPlain,
	MIMETextHTML,
	MIMETextMarkdown,
	MIMEImageSVG,
	MIMEImagePNG,
	MIMEImageJPEG,
	MIMEApplicationPDF,
	MIMETextLaTeX,
	MIMEApplicationJSON,
	MIMEApplicationJavaScript,
)

// IsWellKnown reports whether mt is one of the MIME types that NewResult
// extracts into a named Result field.
func IsWellKnown(mt MIMEType) bool {
	return wellKnownTypes.Contains(mt)
}

// Result is one output record emitted while running a snippet in the kernel,
// normalized from its raw MIME-keyed form. The plain-text representation is
// always present; richer representations are optional, and a presentation
// layer picks the best one available in its own preferred order.
//
// A Result is immutable once constructed.
type Result struct {
	// Text is the plain-text representation. Always present.
	Text string `json:"text"`

	HTML     *string `json:"html,omitempty"`
	Markdown *string `json:"markdown,omitempty"`
	SVG      *string `json:"svg,omitempty"`
	// PNG holds the base64-encoded image bytes.
	PNG *string `json:"png,omitempty"`
	// JPEG holds the base64-encoded image bytes.
	JPEG  *string `json:"jpeg,omitempty"`
	PDF   *string `json:"pdf,omitempty"`
	LaTeX *string `json:"latex,omitempty"`
	// JSON is the decoded structured representation, not a string.
	JSON       any     `json:"json,omitempty"`
	JavaScript *string `json:"javascript,omitempty"`

	// Extra holds every MIME type outside the well-known set, with
	// unchanged payloads.
	Extra map[MIMEType]any `json:"extra,omitempty"`

	// IsMainResult marks the record the kernel reported as the cell's
	// return value rather than an incidental display call.
	IsMainResult bool `json:"is_main_result"`

	// Raw maps every MIME type of the record to its unmodified payload.
	Raw map[MIMEType]any `json:"raw"`
}

// NewResult normalizes one MIME-keyed output record into a Result.
//
// The input must contain a "text/plain" entry; its absence is a broken
// kernel contract and is reported as an error wrapping ErrMissingText.
// The caller's map is deep-copied before extraction and is never mutated.
func NewResult(isMainResult bool, data map[MIMEType]any) (*Result, error) {
	r := &Result{
		IsMainResult: isMainResult,
		Raw:          deepCopy(data),
	}

	work := deepCopy(data)
	v, ok := work[MIMETextPlain]
	if !ok {
		return nil, fmt.Errorf("normalize output record: %w", ErrMissingText)
	}
	text, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("normalize output record: text/plain payload is %T, want string", v)
	}
	delete(work, MIMETextPlain)
	r.Text = text

	r.HTML = popString(work, MIMETextHTML)
	r.Markdown = popString(work, MIMETextMarkdown)
	r.SVG = popString(work, MIMEImageSVG)
	r.PNG = popString(work, MIMEImagePNG)
	r.JPEG = popString(work, MIMEImageJPEG)
	r.PDF = popString(work, MIMEApplicationPDF)
	r.LaTeX = popString(work, MIMETextLaTeX)
	r.JSON = pop(work, MIMEApplicationJSON)
	r.JavaScript = popString(work, MIMEApplicationJavaScript)

	// whatever survived the ten extractions above
	r.Extra = work
	return r, nil
}

// Keys returns the set of MIME types present in the original output record,
// for display-format negotiation by a caller.
func (r *Result) Keys() mapset.Set[MIMEType] {
	keys := mapset.NewThreadUnsafeSet[MIMEType]()
	for mt := range r.Raw {
		keys.Add(mt)
	}
	return keys
}

// Representation looks up the payload for one MIME type, well-known or not.
// A front-end probes it with its preferred formats in priority order and
// falls back to Text when none match.
func (r *Result) Representation(mt MIMEType) (any, bool) {
	v, ok := r.Raw[mt]
	return v, ok
}

// String returns the plain-text representation.
func (r *Result) String() string {
	return r.Text
}

func pop(m map[MIMEType]any, mt MIMEType) any {
	v, ok := m[mt]
	if !ok {
		return nil
	}
	delete(m, mt)
	return v
}

func popString(m map[MIMEType]any, mt MIMEType) *string {
	v, ok := m[mt]
	if !ok {
		return nil
	}
	delete(m, mt)
	s, ok := v.(string)
	if !ok {
		// kernels send these representations as strings; tolerate the
		// odd one out instead of dropping it
		s = fmt.Sprint(v)
	}
	return &s
}

// deepCopy clones a MIME-keyed record, descending into the nested maps and
// slices that decoded application/json payloads are made of.
func deepCopy(data map[MIMEType]any) map[MIMEType]any {
	out := make(map[MIMEType]any, len(data))
	for k, v := range data {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[MIMEType]any:
		return deepCopy(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
