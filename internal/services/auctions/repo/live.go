package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"poketrade/internal/core/auction"
	perr "poketrade/internal/platform/errors"
	"poketrade/internal/platform/logger"
	"poketrade/internal/services/auctions/domain"
)

// Live translates the uniform store contract to the upstream REST backend.
// The backend only supports whole-collection GET and single-resource
// GET/POST/PATCH/DELETE, so filtering, sorting and pagination all happen
// here after the fetch. Records are never cached beyond one call
type Live struct {
	base string
	hc   *http.Client
	meta *Meta
	log  logger.Logger
}

var _ domain.StorePort = (*Live)(nil)

// NewLive creates a live adapter against base (no trailing slash)
func NewLive(base string, meta *Meta) *Live {
	if strings.TrimSpace(base) == "" {
		panic("repo.Live requires a base URL")
	}
	if meta == nil {
		panic("repo.Live requires a non nil meta sidecar")
	}
	return &Live{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 30 * time.Second},
		meta: meta,
		log:  *logger.Named("auction-live"),
	}
}

// do executes one JSON request and returns the raw body for 2xx responses.
// Non-2xx responses become NotFound or Remote errors with the upstream
// message attached
func (l *Live) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "encode %s %s", method, path)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, l.base+path, body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := l.hc.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeRemote, "upstream %s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeRemote, "read %s %s", method, path)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	msg := upstreamMessage(raw)
	if resp.StatusCode == http.StatusNotFound {
		return nil, perr.NotFoundf("%s", msg)
	}
	l.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("upstream error")
	return nil, perr.Remotef("%s", msg)
}

// upstreamMessage digs a human-readable message out of an error body:
// a bare JSON string, a "message" string, or a list of strings joined
// with ", "
func upstreamMessage(raw []byte) string {
	const fallback = "upstream request failed"
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil && bare != "" {
		return bare
	}
	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}
	switch m := body.Message.(type) {
	case string:
		if m != "" {
			return m
		}
	case []any:
		parts := make([]string, 0, len(m))
		for _, e := range m {
			if s, ok := e.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return fallback
}

// decodeCollection tolerates the list shapes the backend has shipped over
// time: a bare array, or an object wrapping it under "data" or "items"
func decodeCollection(raw []byte) []map[string]any {
	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil
	}
	for _, key := range []string{"data", "items"} {
		if inner, ok := wrapped[key]; ok {
			if err := json.Unmarshal(inner, &list); err == nil {
				return list
			}
		}
	}
	return nil
}

// decodeResource unwraps a single-resource body. The backend has shipped
// both the bare object and the object under a top-level "data" key, so both
// are tolerated, mirroring decodeCollection
func decodeResource(raw []byte) []byte {
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Data) > 0 {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(wrapped.Data, &obj); err == nil {
			return wrapped.Data
		}
	}
	return raw
}

// List fetches the entire collection and runs the query pipeline locally
func (l *Live) List(ctx context.Context, q auction.ListQuery) ([]auction.Record, int, error) {
	raw, err := l.do(ctx, http.MethodGet, "/leiloes", nil)
	if err != nil {
		return nil, 0, err
	}

	rows := decodeCollection(raw)
	all, err := l.meta.All()
	if err != nil {
		return nil, 0, err
	}

	items := make([]auction.Record, 0, len(rows))
	for _, row := range rows {
		r := auction.Normalize(row)
		r.ApplyMeta(all[r.ID])
		items = append(items, r)
	}

	page, total := auction.Apply(items, q)
	return page, total, nil
}

// Get fetches and normalizes one record
func (l *Live) Get(ctx context.Context, id string) (auction.Record, error) {
	raw, err := l.do(ctx, http.MethodGet, "/leiloes/"+id, nil)
	if err != nil {
		return auction.Record{}, err
	}
	r := auction.NormalizeJSON(decodeResource(raw))
	meta, err := l.meta.Get(r.ID)
	if err != nil {
		return auction.Record{}, err
	}
	r.ApplyMeta(meta)
	return r, nil
}

// createPayload builds the subset of fields the backend recognizes, under
// the names it expects. Sidecar-only fields are deliberately absent
func createPayload(in domain.CreateInput) map[string]any {
	p := map[string]any{
		"titulo":       in.Title,
		"descricao":    in.Description,
		"precoInicial": jsonNumber(auction.ParsePrice(in.InitialPrice).String()),
	}
	if in.Status != "" {
		p["status"] = in.Status
	}
	if in.EndsAt != "" {
		p["terminaEm"] = in.EndsAt
	}
	if in.Increment != "" {
		p["valor_incremento"] = jsonNumber(auction.ParsePrice(in.Increment).String())
	}
	if in.SellerID != nil {
		p["vendedorId"] = *in.SellerID
	}
	return p
}

func jsonNumber(s string) json.Number { return json.Number(s) }

// Create POSTs the backend-recognized fields and writes the stripped
// sidecar fields under the identifier the backend hands back
func (l *Live) Create(ctx context.Context, in domain.CreateInput) (auction.Record, error) {
	raw, err := l.do(ctx, http.MethodPost, "/leiloes", createPayload(in))
	if err != nil {
		return auction.Record{}, err
	}
	r := auction.NormalizeJSON(decodeResource(raw))

	meta := auction.Meta{Rarity: in.Rarity, CardCondition: in.CardCondition}
	if r.ID != "" && !meta.IsZero() {
		if err := l.meta.Set(r.ID, meta); err != nil {
			return auction.Record{}, err
		}
	}
	r.ApplyMeta(meta)
	return r, nil
}

// updatePayload applies the same stripping rule as createPayload for a patch
func updatePayload(in domain.UpdateInput) map[string]any {
	p := map[string]any{}
	if in.Title != nil {
		p["titulo"] = *in.Title
	}
	if in.Description != nil {
		p["descricao"] = *in.Description
	}
	if in.InitialPrice != nil {
		p["precoInicial"] = jsonNumber(auction.ParsePrice(*in.InitialPrice).String())
	}
	if in.CurrentPrice != nil {
		p["precoAtual"] = jsonNumber(auction.ParsePrice(*in.CurrentPrice).String())
	}
	if in.Increment != nil {
		p["valor_incremento"] = jsonNumber(auction.ParsePrice(*in.Increment).String())
	}
	if in.Status != nil {
		p["status"] = *in.Status
	}
	if in.EndsAt != nil {
		p["terminaEm"] = *in.EndsAt
	}
	if in.Active != nil {
		p["ativo"] = *in.Active
	}
	if in.SellerID != nil {
		p["vendedorId"] = *in.SellerID
	}
	return p
}

// Update PATCHes the backend-recognized fields; sidecar fields go to meta
func (l *Live) Update(ctx context.Context, id string, in domain.UpdateInput) (auction.Record, error) {
	if meta, ok := in.Meta(); ok {
		if err := l.meta.Set(id, meta); err != nil {
			return auction.Record{}, err
		}
	}

	payload := updatePayload(in)
	var raw []byte
	var err error
	if len(payload) > 0 {
		raw, err = l.do(ctx, http.MethodPatch, "/leiloes/"+id, payload)
	} else {
		// meta-only patch, nothing for the backend; fetch the current state
		raw, err = l.do(ctx, http.MethodGet, "/leiloes/"+id, nil)
	}
	if err != nil {
		return auction.Record{}, err
	}

	r := auction.NormalizeJSON(decodeResource(raw))
	meta, err := l.meta.Get(id)
	if err != nil {
		return auction.Record{}, err
	}
	r.ApplyMeta(meta)
	return r, nil
}

// Delete removes the resource upstream plus a best-effort meta cleanup
func (l *Live) Delete(ctx context.Context, id string) error {
	if _, err := l.do(ctx, http.MethodDelete, "/leiloes/"+id, nil); err != nil {
		return err
	}
	if err := l.meta.Delete(id); err != nil {
		l.log.Warn().Err(err).Str("id", id).Msg("meta cleanup failed")
	}
	return nil
}

// ToggleActive reads the current flag and PATCHes its negation
func (l *Live) ToggleActive(ctx context.Context, id string) (auction.Record, error) {
	current, err := l.Get(ctx, id)
	if err != nil {
		return auction.Record{}, err
	}
	next := !current.Active
	return l.Update(ctx, id, domain.UpdateInput{Active: &next})
}
