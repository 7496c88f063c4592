package repo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"poketrade/internal/core/auction"
	perr "poketrade/internal/platform/errors"
	"poketrade/internal/platform/kv"
	"poketrade/internal/services/auctions/domain"
)

func newTestLive(t *testing.T, h http.HandlerFunc) (*Live, *Meta) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	meta := NewMeta(kv.NewMemory())
	return NewLive(srv.URL, meta), meta
}

func TestLiveListNormalizesAndFilters(t *testing.T) {
	live, meta := newTestLive(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/leiloes" {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "titulo": "Charizard", "precoInicial": "9,90", "createdAt": "2026-08-02T00:00:00Z", "status": "aberto"},
			{"id": 2, "titulo": "Eevee", "preco_inicial": 5, "createdAt": "2026-08-01T00:00:00Z", "status": "encerrado"}
		]`))
	})
	_ = meta.Set("1", auction.Meta{Rarity: "Rara"})

	items, total, err := live.List(context.Background(), auction.ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	if items[0].ID != "1" || items[1].ID != "2" {
		t.Fatalf("order = %s, %s", items[0].ID, items[1].ID)
	}
	if !items[0].InitialPrice.Equal(auction.ParsePrice("9.90")) {
		t.Fatalf("comma price = %s", items[0].InitialPrice)
	}
	if items[0].Rarity != "Rara" {
		t.Fatalf("meta not applied: %+v", items[0])
	}

	// filtering happens locally, not upstream
	items, total, err = live.List(context.Background(), auction.ListQuery{Status: auction.StatusOpen})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if total != 1 || items[0].ID != "1" {
		t.Fatalf("filtered = %v total %d", items, total)
	}
}

func TestLiveListWrappedShapes(t *testing.T) {
	for _, key := range []string{"data", "items"} {
		live, _ := newTestLive(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"` + key + `": [{"id": "a", "titulo": "X"}]}`))
		})
		_, total, err := live.List(context.Background(), auction.ListQuery{})
		if err != nil {
			t.Fatalf("List(%s): %v", key, err)
		}
		if total != 1 {
			t.Fatalf("List(%s) total = %d, want 1", key, total)
		}
	}
}

func TestLiveGetUnwrapsData(t *testing.T) {
	for _, body := range []string{
		`{"id": "5", "titulo": "Mew", "precoInicial": 10}`,
		`{"data": {"id": "5", "titulo": "Mew", "precoInicial": 10}}`,
	} {
		live, _ := newTestLive(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		rec, err := live.Get(context.Background(), "5")
		if err != nil {
			t.Fatalf("Get(%s): %v", body, err)
		}
		if rec.ID != "5" || rec.Title != "Mew" {
			t.Fatalf("Get(%s) = %+v", body, rec)
		}
		if !rec.InitialPrice.Equal(auction.ParsePrice("10")) {
			t.Fatalf("Get(%s) price = %s", body, rec.InitialPrice)
		}
	}
}

func TestLiveGetNotFound(t *testing.T) {
	live, _ := newTestLive(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "leilão não encontrado"}`))
	})

	_, err := live.Get(context.Background(), "42")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if wire := perr.WireFrom(err); wire.Message != "leilão não encontrado" {
		t.Fatalf("message = %q", wire.Message)
	}
}

func TestLiveErrorMessageShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"string message", `{"message": "nope"}`, "nope"},
		{"bare string body", `"cota excedida"`, "cota excedida"},
		{"message list", `{"message": ["too cheap", "too late"]}`, "too cheap, too late"},
		{"unparsable body", `<html>boom</html>`, "upstream request failed"},
		{"missing field", `{"error": "other"}`, "upstream request failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			live, _ := newTestLive(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := live.Get(context.Background(), "1")
			if !perr.IsCode(err, perr.ErrorCodeRemote) {
				t.Fatalf("err = %v, want remote", err)
			}
			if wire := perr.WireFrom(err); wire.Message != tc.want {
				t.Fatalf("message = %q, want %q", wire.Message, tc.want)
			}
		})
	}
}

func TestLiveCreateStripsSidecarFields(t *testing.T) {
	var got map[string]any
	live, meta := newTestLive(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/leiloes" {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "99", "titulo": "Snorlax", "precoInicial": 30}`))
	})

	seven := int64(7)
	rec, err := live.Create(context.Background(), domain.CreateInput{
		Title:         "Snorlax",
		InitialPrice:  "30",
		SellerID:      &seven,
		OwnerName:     "Red",
		Rarity:        "Incomum",
		CardCondition: "Usada",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, banned := range []string{"rarity", "raridade", "card_condition", "estadoCarta", "owner_name", "ownerNome"} {
		if _, ok := got[banned]; ok {
			t.Fatalf("sidecar field %q leaked upstream: %v", banned, got)
		}
	}
	if got["titulo"] != "Snorlax" || got["vendedorId"] != float64(7) {
		t.Fatalf("payload = %v", got)
	}

	// stripped fields landed in the sidecar under the returned id
	m, err := meta.Get("99")
	if err != nil {
		t.Fatalf("meta.Get: %v", err)
	}
	if m.Rarity != "Incomum" || m.CardCondition != "Usada" {
		t.Fatalf("meta = %+v", m)
	}
	if rec.Rarity != "Incomum" {
		t.Fatalf("returned record not enriched: %+v", rec)
	}
}

func TestLiveCreateUnwrapsData(t *testing.T) {
	live, meta := newTestLive(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data": {"id": "7", "titulo": "Mew", "precoInicial": 10}}`))
	})

	rec, err := live.Create(context.Background(), domain.CreateInput{
		Title:        "Mew",
		InitialPrice: "10",
		Rarity:       "Secreta",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID != "7" {
		t.Fatalf("id = %q, want 7", rec.ID)
	}

	// the sidecar write must key on the unwrapped id
	m, err := meta.Get("7")
	if err != nil {
		t.Fatalf("meta.Get: %v", err)
	}
	if m.Rarity != "Secreta" {
		t.Fatalf("meta = %+v", m)
	}
}

func TestLiveToggleActive(t *testing.T) {
	var patched map[string]any
	live, _ := newTestLive(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"id": "5", "titulo": "Mew", "ativo": true}`))
		case http.MethodPatch:
			if err := json.NewDecoder(r.Body).Decode(&patched); err != nil {
				t.Errorf("decode: %v", err)
			}
			_, _ = w.Write([]byte(`{"id": "5", "titulo": "Mew", "ativo": false}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	rec, err := live.ToggleActive(context.Background(), "5")
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if patched["ativo"] != false {
		t.Fatalf("patch body = %v, want negated flag", patched)
	}
	if rec.Active {
		t.Fatalf("record still active after toggle")
	}
}

func TestLiveDeleteCleansMeta(t *testing.T) {
	live, meta := newTestLive(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	_ = meta.Set("5", auction.Meta{Rarity: "Rara"})

	if err := live.Delete(context.Background(), "5"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	m, _ := meta.Get("5")
	if !m.IsZero() {
		t.Fatalf("meta survived delete: %+v", m)
	}
}
