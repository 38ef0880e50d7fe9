package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/raffle/internal/core/domain"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

type fakeParticipantService struct {
	calls []ports.RegisterInput
	err   error
}

func (f *fakeParticipantService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Participant, error) {
	f.calls = append(f.calls, input)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Participant{Poll: 1, Added: 1709294400000, Person: *input.Person, Friend: domain.NoFriend()}, nil
}

type fakePinger struct {
	ports.ParticipantStore
	err error
}

func (f fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func newTestServer(t *testing.T, svc ports.ParticipantService) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewHandler(NewParticipantHandler(svc), NewHealthHandler(fakePinger{})))
	t.Cleanup(server.Close)
	return server
}

func post(t *testing.T, server *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := server.Client().Post(server.URL+"/api/participants", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func TestAddParticipant(t *testing.T) {
	svc := &fakeParticipantService{}
	server := newTestServer(t, svc)

	resp, payload := post(t, server, `{"person":"Ana","friend":"Marko"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, map[string]any{"added": float64(1709294400000)}, payload)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, "Ana", *svc.calls[0].Person)
	assert.Equal(t, "Marko", *svc.calls[0].Friend)
}

func TestAddParticipantRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", "", "No request body!"},
		{"invalid json", "{person", "Bad request body!"},
		{"array body", `["ana"]`, "Bad request body!"},
		{"non string person", `{"person": 12}`, "Bad request body!"},
		{"oversized body", `{"person":"` + strings.Repeat("a", maxBodyBytes) + `"}`, "Bad request body!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeParticipantService{}
			server := newTestServer(t, svc)

			resp, payload := post(t, server, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.message, payload["errorMessage"])
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Empty(t, svc.calls)
		})
	}
}

func TestAddParticipantMapsServiceErrors(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{&domain.ValidationError{Field: "person", Reason: domain.ReasonMissing}, http.StatusBadRequest, "person parameter doesn't exist in the API call!"},
		{&domain.ValidationError{Field: "person", Reason: domain.ReasonTooShort}, http.StatusBadRequest, "Person name should contain at least 3 letters!"},
		{&domain.ValidationError{Field: "person", Reason: domain.ReasonTooLong}, http.StatusBadRequest, "Too long person name!"},
		{&domain.ValidationError{Field: "friend", Reason: domain.ReasonTooShort}, http.StatusBadRequest, "Friend name should contain at least 1 letter!"},
		{&domain.ValidationError{Field: "friend", Reason: domain.ReasonTooLong}, http.StatusBadRequest, "Too long friend name!"},
		{&domain.ValidationError{Field: "person", Reason: domain.ReasonInvalidCharacters}, http.StatusBadRequest, "person value contains not allowed characters!"},
		{&domain.ValidationError{Field: "friend", Reason: domain.ReasonInvalidCharacters}, http.StatusBadRequest, "friend value contains not allowed characters!"},
		{domain.ErrCapacityExceeded, http.StatusBadRequest, "No more participants in this poll!"},
		{&domain.DuplicateParticipantError{Person: "ana"}, http.StatusBadRequest, "Participant ana exists in the current poll!"},
		{fmt.Errorf("%w: put participant: %w", domain.ErrStoreUnavailable, errors.New("pq: relation does not exist")), http.StatusInternalServerError, "Database error!"},
		{errors.New("unexpected"), http.StatusInternalServerError, "Database error!"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			server := newTestServer(t, &fakeParticipantService{err: tt.err})

			resp, payload := post(t, server, `{"person":"ana"}`)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, map[string]any{"errorMessage": tt.message}, payload)
			assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestPreflight(t *testing.T) {
	server := newTestServer(t, &fakeParticipantService{})

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/participants", nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestHealthz(t *testing.T) {
	server := httptest.NewServer(NewHandler(NewParticipantHandler(&fakeParticipantService{}), NewHealthHandler(fakePinger{})))
	defer server.Close()

	resp, err := server.Client().Get(server.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	down := httptest.NewServer(NewHandler(NewParticipantHandler(&fakeParticipantService{}), NewHealthHandler(fakePinger{err: errors.New("down")})))
	defer down.Close()

	resp, err = down.Client().Get(down.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
