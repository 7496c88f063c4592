package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestCodesMapToHTTP(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeRemote, http.StatusBadGateway},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{ErrorCode(999), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%d) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrs.New("boom")
	err := Wrapf(cause, ErrorCodeRemote, "upstream list failed")

	e, ok := As(err)
	if !ok {
		t.Fatalf("As() did not recognize our error")
	}
	if e.Code() != ErrorCodeRemote {
		t.Fatalf("Code() = %d, want Remote", e.Code())
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("wrapped cause lost")
	}
	if Root(err) != cause {
		t.Fatalf("Root() = %v, want cause", Root(err))
	}
	if got := err.Error(); got != "upstream list failed: boom" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w.Message != "" || w.Code != ErrorCodeUnknown {
		t.Fatalf("WireFrom(nil) = %+v, want zero", w)
	}
	w := WireFrom(NotFoundf("auction %s not found", "x1"))
	if w.Code != ErrorCodeNotFound || w.Message != "auction x1 not found" {
		t.Fatalf("WireFrom = %+v", w)
	}
	// foreign errors map to Unknown
	w = WireFrom(stderrs.New("alien"))
	if w.Code != ErrorCodeUnknown || w.Message != "alien" {
		t.Fatalf("WireFrom foreign = %+v", w)
	}
}

func TestMutators(t *testing.T) {
	base := Validationf("title required")
	withField := WithField(base, "title")
	e, _ := As(withField)
	if e.Field() != "title" {
		t.Fatalf("Field() = %q, want title", e.Field())
	}
	// original untouched (copy-on-write)
	b, _ := As(base)
	if b.Field() != "" {
		t.Fatalf("base mutated: field = %q", b.Field())
	}
	withOp := WithOp(base, "auctions.create")
	o, _ := As(withOp)
	if o.Op() != "auctions.create" {
		t.Fatalf("Op() = %q", o.Op())
	}
	// foreign errors pass through unchanged
	alien := stderrs.New("alien")
	if WithField(alien, "x") != alien {
		t.Fatalf("WithField on foreign error should be identity")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatalf("IsCode(ErrNotFound, NotFound) = false")
	}
	if IsCode(stderrs.New("x"), ErrorCodeNotFound) {
		t.Fatalf("IsCode(foreign, NotFound) = true")
	}
}
