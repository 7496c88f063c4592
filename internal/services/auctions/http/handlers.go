// Package http provides http transport for auctions
package http

import (
	stdhttp "net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	phttp "poketrade/internal/platform/net/http"
	"poketrade/internal/platform/net/http/bind"
	"poketrade/internal/services/auctions/domain"
	svc "poketrade/internal/services/auctions/service"
)

// Register mounts the auction endpoints on the given router
func Register(r phttp.Router, s svc.Service) {
	h := &handlers{svc: s}

	r.Get("/", phttp.Handle(h.list))
	phttp.GetJSON(r, "/{id}", h.get)
	r.Post("/", phttp.Handle(h.create))
	phttp.PatchJSON[domain.UpdateInput](r, "/{id}", h.update)
	r.Delete("/{id}", phttp.Handle(h.remove))
	// toggle carries no body, so it skips the JSON bind path
	r.Patch("/{id}/toggle", phttp.Handle(h.toggle))
}

// RegisterSource mounts the data source switch endpoints
func RegisterSource(r phttp.Router, s svc.Service) {
	h := &handlers{svc: s}

	phttp.GetJSON(r, "/", h.source)
	phttp.PutJSON[domain.SourceInput](r, "/", h.setSource)
}

type handlers struct{ svc svc.Service }

// parseListInput reads the query string into a ListInput and validates it
func parseListInput(r *stdhttp.Request) (domain.ListInput, error) {
	qs := r.URL.Query()
	in := domain.ListInput{
		Search:    strings.TrimSpace(qs.Get("q")),
		Status:    strings.TrimSpace(qs.Get("status")),
		Rarity:    strings.TrimSpace(qs.Get("rarity")),
		Condition: strings.TrimSpace(qs.Get("condition")),
		DateFrom:  strings.TrimSpace(qs.Get("date_from")),
		DateTo:    strings.TrimSpace(qs.Get("date_to")),
		Scope:     strings.TrimSpace(qs.Get("scope")),
		OwnerRef:  strings.TrimSpace(qs.Get("owner_ref")),
	}
	// malformed numbers fall back to the defaults, same as absent
	if n, err := strconv.Atoi(qs.Get("page")); err == nil {
		in.Page = n
	}
	if n, err := strconv.Atoi(qs.Get("limit")); err == nil {
		in.Limit = n
	}
	if raw := qs.Get("owner_id"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			in.OwnerID = &n
		}
	}
	if err := bind.Struct(in); err != nil {
		return domain.ListInput{}, err
	}
	return in, nil
}

func (h *handlers) list(r *stdhttp.Request) phttp.Response {
	in, err := parseListInput(r)
	if err != nil {
		return phttp.Error(err)
	}
	out, err := h.svc.List(r.Context(), in)
	if err != nil {
		return phttp.Error(err)
	}
	return phttp.List(out.Items, out.Total, out.Page, out.Limit)
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "id"))
}

func (h *handlers) create(r *stdhttp.Request) phttp.Response {
	in, err := bind.ParseJSON[domain.CreateInput](r)
	if err != nil {
		return phttp.Error(err)
	}
	rec, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return phttp.Error(err)
	}
	return phttp.Created(rec)
}

func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
}

func (h *handlers) remove(r *stdhttp.Request) phttp.Response {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return phttp.Error(err)
	}
	return phttp.NoContent()
}

func (h *handlers) toggle(r *stdhttp.Request) phttp.Response {
	rec, err := h.svc.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return phttp.Error(err)
	}
	return phttp.OK(rec)
}

func (h *handlers) source(r *stdhttp.Request) (any, error) {
	return h.svc.Source(r.Context())
}

func (h *handlers) setSource(r *stdhttp.Request, in domain.SourceInput) (any, error) {
	return h.svc.SetSource(r.Context(), in)
}
