// Package middleware decodes request forms into nested values at the HTTP
// boundary and stores the result in the request context. The gin and echo
// adapters live in their own modules under this directory.
package middleware

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	formskema "github.com/reoring/formskema"
)

// ctxKey is a typed context key. Using a generic struct type ensures
// uniqueness per T.
type ctxKey[T any] struct{}

// ContextWith attaches v to the context under a key private to T.
func ContextWith[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKey[T]{}, v)
}

// FromContext retrieves the value stored by ContextWith.
func FromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKey[T]{}).(T)
	return v, ok
}

// Decoded is the form decoded from one request.
type Decoded struct {
	Value map[string]any
	// Issues holds structural problems tolerated in lenient mode.
	Issues formskema.Issues
}

// ContextWithDecoded attaches d to the context.
func ContextWithDecoded(ctx context.Context, d Decoded) context.Context {
	return ContextWith(ctx, d)
}

// DecodedFromContext retrieves the Decoded stored by DecodeForm.
func DecodedFromContext(ctx context.Context) (Decoded, bool) {
	return FromContext[Decoded](ctx)
}

// Config controls DecodeForm.
type Config struct {
	Options formskema.Options
	// Lenient keeps the partial result when decoding reports Issues instead
	// of answering 400.
	Lenient bool
}

// DefaultOptions returns the decoder options recommended at HTTP
// boundaries: prefix conflicts are errors and array indexes are capped.
func DefaultOptions() formskema.Options {
	return formskema.Options{
		OnConflict:    formskema.ConflictError,
		MaxArrayIndex: formskema.DefaultMaxArrayIndex,
	}
}

// Decode runs formskema.DecodeRequest under cfg. In lenient mode Issues are
// returned inside Decoded and err stays nil; other failures are returned
// as err.
func Decode(r *http.Request, cfg Config) (Decoded, error) {
	tree, err := formskema.DecodeRequest(r, cfg.Options)
	if err != nil {
		iss, ok := formskema.AsIssues(err)
		if !ok || !cfg.Lenient {
			return Decoded{Value: tree, Issues: iss}, err
		}
		return Decoded{Value: tree, Issues: iss}, nil
	}
	return Decoded{Value: tree}, nil
}

// DecodeForm returns net/http middleware that decodes the request form,
// stores the Decoded value in the request context and answers 400 with an
// ErrorPayload when decoding fails.
func DecodeForm(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := Decode(r, cfg)
			if err != nil {
				WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), d)))
		})
	}
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []formskema.Issue) map[string]any {
	return map[string]any{"issues": issues}
}

// ErrorBody returns the JSON body for err: an ErrorPayload for Issues and
// {"error": message} otherwise.
func ErrorBody(err error) map[string]any {
	if iss, ok := formskema.AsIssues(err); ok {
		return ErrorPayload(iss)
	}
	return map[string]any{"error": err.Error()}
}

// WriteError writes ErrorBody(err) with status 400.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(ErrorBody(err))
}
