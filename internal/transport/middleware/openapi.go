package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

// OpenAPIValidator checks requests against the API document before they reach
// a handler. Paths the document does not describe are passed through.
type OpenAPIValidator struct {
	*transport.BaseHandler
	router routers.Router
}

func NewOpenAPIValidator(specData []byte, base *transport.BaseHandler) (*OpenAPIValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(specData)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return &OpenAPIValidator{BaseHandler: base, router: router}, nil
}

func (v *OpenAPIValidator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, pathParams, err := v.router.FindRoute(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			v.WriteAppError(w, requestValidationError(err))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requestValidationError(err error) *internal.AppError {
	field := "request"
	message := err.Error()

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Parameter != nil:
			field = reqErr.Parameter.Name
		case reqErr.RequestBody != nil:
			field = "body"
		}
		if reqErr.Reason != "" {
			message = reqErr.Reason
		}
		var schemaErr *openapi3.SchemaError
		if errors.As(reqErr.Err, &schemaErr) {
			message = schemaErr.Reason
			if path := schemaErr.JSONPointer(); len(path) > 0 {
				field = path[len(path)-1]
			}
		}
	}

	return internal.NewValidationError("Request does not match the API contract", internal.ErrCodeRequestValidation).
		WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
			{Field: field, Message: message, Code: string(internal.ErrCodeRequestValidation)},
		}})
}
