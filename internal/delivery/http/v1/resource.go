package v1

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/validation"
	"gamestore-admin/pkg/logger"
	"gamestore-admin/pkg/utils"
)

const msgNotFound = "not found"

// entityUsecase is the part of a use case the generic handler drives.
type entityUsecase[T, P any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, id int64, p P) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// crud implements Show, Create, Update and Delete for one resource. Lists
// differ per resource and live on the embedding handler.
type crud[T, P any] struct {
	singular  string
	uc        entityUsecase[T, P]
	create    func(r *http.Request, p P) (*T, error)
	permitted []string
	bind      func(*params) P
}

func (c *crud[T, P]) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", c.singular)
	if err != nil {
		fail(w, r, err)
		return
	}
	entity, err := c.uc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	c.render(w, entity)
}

func (c *crud[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	p, err := c.params(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	entity, err := c.create(r, p)
	if err != nil {
		fail(w, r, err)
		return
	}
	c.render(w, entity)
}

func (c *crud[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", c.singular)
	if err != nil {
		fail(w, r, err)
		return
	}
	p, err := c.params(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	entity, err := c.uc.Update(r.Context(), id, p)
	if err != nil {
		fail(w, r, err)
		return
	}
	c.render(w, entity)
}

func (c *crud[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", c.singular)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := c.uc.Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	utils.WriteNoContent(w)
}

func (c *crud[T, P]) params(r *http.Request) (P, error) {
	var zero P
	p, err := bindParams(r, c.singular, c.permitted...)
	if err != nil {
		return zero, err
	}
	bound := c.bind(p)
	if err := p.Err(); err != nil {
		return zero, err
	}
	return bound, nil
}

func (c *crud[T, P]) render(w http.ResponseWriter, entity *T) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{c.singular: view(entity)})
}

// viewer is implemented by entities whose JSON shape differs from the struct.
type viewer interface {
	View() any
}

func view(v any) any {
	if vw, ok := v.(viewer); ok {
		return vw.View()
	}
	return v
}

// viewAll renders a list, never as null.
func viewAll[T any](items []T) []any {
	out := make([]any, 0, len(items))
	for i := range items {
		out = append(out, view(&items[i]))
	}
	return out
}

func writePage[T any](w http.ResponseWriter, plural string, items []T, meta domain.Pagination) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		plural: viewAll(items),
		"meta": meta,
	})
}

// fail renders err with the shared error envelope.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalid  validation.Errors
		notFound *domain.NotFoundError
	)
	switch {
	case errors.Is(err, errMalformedBody):
		utils.WriteError(w, http.StatusBadRequest, "Malformed JSON body")
	case errors.As(err, &invalid):
		utils.WriteFieldErrors(w, http.StatusUnprocessableEntity, utils.FieldErrors(invalid))
	case errors.As(err, &notFound):
		utils.WriteFieldErrors(w, http.StatusNotFound, utils.FieldErrors{notFound.Field: {msgNotFound}})
	default:
		logger.WithContext(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses a route id. Anything that is not an id cannot name a row, so
// it is reported as not found.
func pathID(r *http.Request, name, resource string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.NotFoundError{Resource: resource, Field: name}
	}
	return id, nil
}

// listQuery reads search, order[<column>], page and length. The use case
// normalizes the result.
func listQuery(r *http.Request) domain.ListQuery {
	values := r.URL.Query()
	q := domain.ListQuery{
		Search: strings.TrimSpace(values.Get("search")),
		Page:   utils.ParseInt(values.Get("page"), domain.DefaultPage),
		Length: utils.ParseInt(values.Get("length"), domain.DefaultLength),
	}
	q.Order, q.Desc = orderParam(r.URL.RawQuery)
	return q
}

// orderParam returns the first order[<column>] pair in query-string order.
func orderParam(rawQuery string) (column string, desc bool) {
	for pair := range strings.SplitSeq(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			continue
		}
		name, ok := strings.CutPrefix(key, "order[")
		if !ok || !strings.HasSuffix(name, "]") {
			continue
		}
		dir, _ := url.QueryUnescape(v)
		return strings.TrimSuffix(name, "]"), strings.EqualFold(dir, "desc")
	}
	return "", false
}
