package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

// pathID binds the {id} path segment. Identifiers are positive integers;
// anything else is a 400.
func pathID(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	return id, nil
}

// bindQuery binds one optional form-style query parameter into dest, which
// must be a pointer to a pointer (e.g. **int). A missing parameter leaves it nil.
func bindQuery(q url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
		return fmt.Errorf("%w: invalid format for parameter %s", domain.ErrValidation, name)
	}
	return nil
}

// queryParam pairs a query parameter name with its binding destination.
// Parameters are bound in slice order so the first malformed one is reported.
type queryParam struct {
	name string
	dest any
}

func bindQueryParams(q url.Values, params []queryParam) error {
	for _, p := range params {
		if err := bindQuery(q, p.name, p.dest); err != nil {
			return err
		}
	}
	return nil
}

// listParams are the query parameters shared by every listing.
type listParams struct {
	Page      *int    `json:"page" validate:"omitempty,min=1"`
	Limit     *int    `json:"limit" validate:"omitempty,min=1"`
	SortBy    *string `json:"sortBy"`
	SortOrder *string `json:"sortOrder"`
}

func bindListParams(q url.Values) (listParams, error) {
	var p listParams
	if err := bindQueryParams(q, []queryParam{
		{"page", &p.Page},
		{"limit", &p.Limit},
		{"sortBy", &p.SortBy},
		{"sortOrder", &p.SortOrder},
	}); err != nil {
		return listParams{}, err
	}
	if err := validateStruct(p); err != nil {
		return listParams{}, err
	}
	return p, nil
}

// sortAndPage normalizes sorting against allowed and applies page defaults.
func (p listParams) sortAndPage(allowed []string) (domain.Sort, domain.PaginationParams, error) {
	sort, err := domain.NewSort(deref(p.SortBy), deref(p.SortOrder), allowed)
	if err != nil {
		return domain.Sort{}, domain.PaginationParams{}, err
	}
	return sort, domain.NewPaginationParams(p.Page, p.Limit), nil
}

// destinationFilterParams are the destination listing filters.
type destinationFilterParams struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Status    *string    `json:"status" validate:"omitempty,oneof=PLANNED ONGOING COMPLETED CANCELLED"`
}

// destinationQuery builds a DestinationQuery from the request URL.
// startDate keeps destinations starting on or after it; endDate keeps those
// ending on or before it. Dates may be RFC 3339 or YYYY-MM-DD.
func destinationQuery(r *http.Request) (domain.DestinationQuery, error) {
	q := r.URL.Query()
	lp, err := bindListParams(q)
	if err != nil {
		return domain.DestinationQuery{}, err
	}
	var fp destinationFilterParams
	if err := bindQueryParams(q, []queryParam{
		{"name", &fp.Name},
		{"startDate", &fp.StartDate},
		{"endDate", &fp.EndDate},
		{"status", &fp.Status},
	}); err != nil {
		return domain.DestinationQuery{}, err
	}
	if err := validateStruct(fp); err != nil {
		return domain.DestinationQuery{}, err
	}
	sort, page, err := lp.sortAndPage(domain.DestinationSortKeys)
	if err != nil {
		return domain.DestinationQuery{}, err
	}

	f := domain.DestinationFilter{
		Name:      deref(fp.Name),
		StartFrom: fp.StartDate,
		EndUntil:  fp.EndDate,
	}
	if fp.Status != nil {
		st := domain.Status(*fp.Status)
		f.Status = &st
	}
	return domain.DestinationQuery{Filter: f, Sort: sort, Page: page}, nil
}

// customerFilterParams are the customer listing filters. Each bound is
// independently optional and inclusive.
type customerFilterParams struct {
	Name        *string    `json:"name"`
	Email       *string    `json:"email"`
	CreatedFrom *time.Time `json:"createdFrom"`
	CreatedTo   *time.Time `json:"createdTo"`
	UpdatedFrom *time.Time `json:"updatedFrom"`
	UpdatedTo   *time.Time `json:"updatedTo"`
}

// customerQuery builds a CustomerQuery from the request URL.
func customerQuery(r *http.Request) (domain.CustomerQuery, error) {
	q := r.URL.Query()
	lp, err := bindListParams(q)
	if err != nil {
		return domain.CustomerQuery{}, err
	}
	var fp customerFilterParams
	if err := bindQueryParams(q, []queryParam{
		{"name", &fp.Name},
		{"email", &fp.Email},
		{"createdFrom", &fp.CreatedFrom},
		{"createdTo", &fp.CreatedTo},
		{"updatedFrom", &fp.UpdatedFrom},
		{"updatedTo", &fp.UpdatedTo},
	}); err != nil {
		return domain.CustomerQuery{}, err
	}
	sort, page, err := lp.sortAndPage(domain.CustomerSortKeys)
	if err != nil {
		return domain.CustomerQuery{}, err
	}
	return domain.CustomerQuery{
		Filter: domain.CustomerFilter{
			Name:        deref(fp.Name),
			Email:       deref(fp.Email),
			CreatedFrom: fp.CreatedFrom,
			CreatedTo:   fp.CreatedTo,
			UpdatedFrom: fp.UpdatedFrom,
			UpdatedTo:   fp.UpdatedTo,
		},
		Sort: sort,
		Page: page,
	}, nil
}

// decodeBody decodes a JSON request body into dst and runs its validation
// tags. Errors are already domain errors except for an oversized body,
// which is returned as *http.MaxBytesError.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &tooLarge):
			return err
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is required", domain.ErrValidation)
		case errors.Is(err, openapi_types.ErrValidationEmail):
			return fmt.Errorf("%w: email must be a valid email address", domain.ErrValidation)
		case errors.As(err, &syntaxErr):
			return fmt.Errorf("%w: malformed JSON at offset %d", domain.ErrValidation, syntaxErr.Offset)
		case errors.As(err, &typeErr):
			return fmt.Errorf("%w: %s has the wrong type", domain.ErrValidation, typeErr.Field)
		default:
			return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
		}
	}
	return validateStruct(dst)
}

// timestamp accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date
// (midnight UTC) in request bodies.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v
		return nil
	}
	v, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		return fmt.Errorf("%q is not an RFC 3339 timestamp or YYYY-MM-DD date", s)
	}
	t.Time = v
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
