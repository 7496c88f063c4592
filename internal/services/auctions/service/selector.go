package service

import (
	"strconv"
	"strings"

	"poketrade/internal/platform/kv"
	"poketrade/internal/platform/logger"
)

// flagKey is the stable storage key for the mock/live flag
const flagKey = "use_mock"

// Selector is a two-state switch between the mock store and the live
// adapter. The flag is re-read on every call so a toggle takes effect
// immediately; it changes only through an explicit SetMock
type Selector struct {
	kv  kv.Store
	def bool
	log logger.Logger
}

// NewSelector creates a selector with def as the fallback when no flag has
// been persisted yet
func NewSelector(s kv.Store, def bool) *Selector {
	if s == nil {
		panic("service.Selector requires a non nil kv store")
	}
	return &Selector{kv: s, def: def, log: *logger.Named("datasource")}
}

// UseMock reports the current state. Unreadable or unparsable flags fall
// back to the default rather than failing the request
func (s *Selector) UseMock() bool {
	b, ok, err := s.kv.Get(flagKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("flag read failed, using default")
		return s.def
	}
	if !ok {
		return s.def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(string(b)))
	if err != nil {
		return s.def
	}
	return v
}

// SetMock persists the new state immediately
func (s *Selector) SetMock(useMock bool) error {
	return s.kv.Put(flagKey, []byte(strconv.FormatBool(useMock)))
}
