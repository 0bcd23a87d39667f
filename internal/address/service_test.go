package address

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samiul132/anginar-bazar/internal/session"
	"github.com/samiul132/anginar-bazar/internal/store"
	"github.com/samiul132/anginar-bazar/internal/upstream"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestService(t *testing.T, upstreamURL string, authenticated bool) *Service {
	t.Helper()
	log := testLogger()
	sessions := session.NewManager(store.NewMemoryStore(), log)
	if authenticated {
		err := sessions.Save(context.Background(), "sid-1", session.Session{
			Token:    "tok-1",
			Customer: upstream.Customer{Name: "Karim"},
		})
		require.NoError(t, err)
	}
	return NewService(upstream.NewClient(upstreamURL, "", log), sessions, log)
}

func TestDefault(t *testing.T) {
	flagged := []upstream.Address{
		{ID: 1, IsDefault: 0},
		{ID: 2, IsDefault: 1},
		{ID: 3, IsDefault: 0},
	}
	d := Default(flagged)
	require.NotNil(t, d)
	assert.Equal(t, 2, d.ID)

	// no flag set: fall back to the first entry
	unflagged := []upstream.Address{
		{ID: 4, IsDefault: 0},
		{ID: 5, IsDefault: 0},
	}
	d = Default(unflagged)
	require.NotNil(t, d)
	assert.Equal(t, 4, d.ID)

	assert.Nil(t, Default(nil))
	assert.Nil(t, Default([]upstream.Address{}))
}

func TestList_RequiresSession(t *testing.T) {
	s := newTestService(t, "http://127.0.0.1:0", false)
	_, err := s.List(context.Background(), "sid-1")
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
}

func TestList_EmptyBookIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"data":{"addressList":[]}}`))
	}))
	defer srv.Close()

	s := newTestService(t, srv.URL, true)
	addrs, err := s.List(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.NotNil(t, addrs)
	assert.Empty(t, addrs)
}

func TestAdd_SendsIntegerDefaultFlag(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	s := newTestService(t, srv.URL, true)
	err := s.Add(context.Background(), "sid-1", upstream.AddressPayload{
		StreetAddress: "12 Green Road",
		DivisionID:    1,
		DistrictID:    6,
		UpazilaID:     58,
		IsDefault:     1,
	})
	require.NoError(t, err)

	// the upstream silently drops boolean is_default values
	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, "1", string(sent["is_default"]))
}

func TestDelete_PassesThroughUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Address not found"}`))
	}))
	defer srv.Close()

	s := newTestService(t, srv.URL, true)
	err := s.Delete(context.Background(), "sid-1", 99)

	var apiErr *upstream.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Address not found", apiErr.Message)
}
