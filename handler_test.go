package socialmedia

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimiolaniyan/socialmedia/auth"
)

func newTestRouter(t *testing.T) (*httprouter.Router, auth.Account) {
	accounts := auth.NewAccountRepository()
	author := registerAccount(t, accounts, "author")

	router := httprouter.New()
	RegisterRoutes(router, NewService(NewMessageRepository(), accounts, nil))
	return router, author
}

func serve(h http.Handler, method, url, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, url, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestCreateMessageHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		req      string
		wantCode int
		wantBody string
	}{
		{`{"postedBy":1,"messageText":"hello","timePostedEpoch":1669947792}`, http.StatusOK,
			`{"messageId":1,"postedBy":1,"messageText":"hello","timePostedEpoch":1669947792}`},
		{`{"postedBy":1,"messageText":"   "}`, http.StatusBadRequest, `{"error":"` + ErrInvalidMessageText.Error() + `"}`},
		{`{"postedBy":1,"messageText":"` + strings.Repeat("a", 256) + `"}`, http.StatusBadRequest, `{"error":"` + ErrInvalidMessageText.Error() + `"}`},
		{`{"postedBy":7,"messageText":"hello"}`, http.StatusBadRequest, `{"error":"` + ErrInvalidAuthor.Error() + `"}`},
		{`{"messageText":"hello"}`, http.StatusBadRequest, `{"error":"` + ErrInvalidAuthor.Error() + `"}`},
		{`not json`, http.StatusBadRequest, `{"error":"` + ErrMalformedRequest.Error() + `"}`},
	}

	for _, tt := range tests {
		w := serve(router, http.MethodPost, "/messages", tt.req)

		assert.Equal(t, tt.wantCode, w.Code, tt.req)
		assert.JSONEq(t, tt.wantBody, w.Body.String(), tt.req)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	}
}

func TestGetMessagesHandler(t *testing.T) {
	router, author := newTestRouter(t)

	w := serve(router, http.MethodGet, "/messages", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	serve(router, http.MethodPost, "/messages", `{"postedBy":1,"messageText":"a","timePostedEpoch":1}`)
	serve(router, http.MethodPost, "/messages", `{"postedBy":1,"messageText":"b","timePostedEpoch":2}`)

	w = serve(router, http.MethodGet, "/messages", "")
	var messages []Message
	require.NoError(t, json.NewDecoder(w.Body).Decode(&messages))
	assert.Equal(t, []Message{
		{ID: 1, PostedBy: author.ID, MessageText: "a", TimePostedEpoch: 1},
		{ID: 2, PostedBy: author.ID, MessageText: "b", TimePostedEpoch: 2},
	}, messages)
}

func TestGetMessageHandler(t *testing.T) {
	router, _ := newTestRouter(t)
	serve(router, http.MethodPost, "/messages", `{"postedBy":1,"messageText":"a","timePostedEpoch":1}`)

	tests := []struct {
		url      string
		wantCode int
		wantBody string
	}{
		{"/messages/1", http.StatusOK, `{"messageId":1,"postedBy":1,"messageText":"a","timePostedEpoch":1}`},
		{"/messages/2", http.StatusOK, ""},
		{"/messages/abc", http.StatusBadRequest, `{"error":"` + ErrInvalidID.Error() + `"}`},
	}

	for _, tt := range tests {
		w := serve(router, http.MethodGet, tt.url, "")

		assert.Equal(t, tt.wantCode, w.Code, tt.url)
		if tt.wantBody == "" {
			assert.Empty(t, w.Body.String(), tt.url)
			continue
		}
		assert.JSONEq(t, tt.wantBody, w.Body.String(), tt.url)
	}
}

func TestDeleteMessageHandler(t *testing.T) {
	router, _ := newTestRouter(t)
	serve(router, http.MethodPost, "/messages", `{"postedBy":1,"messageText":"a"}`)

	w := serve(router, http.MethodDelete, "/messages/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", strings.TrimSpace(w.Body.String()))

	w = serve(router, http.MethodDelete, "/messages/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = serve(router, http.MethodGet, "/messages/1", "")
	assert.Empty(t, w.Body.String())
}

func TestUpdateMessageHandler(t *testing.T) {
	router, _ := newTestRouter(t)
	serve(router, http.MethodPost, "/messages", `{"postedBy":1,"messageText":"a","timePostedEpoch":5}`)

	tests := []struct {
		url, req string
		wantCode int
		wantBody string
	}{
		{"/messages/9", `{"messageText":""}`, http.StatusNotFound, `{"error":"` + ErrMessageNotFound.Error() + `"}`},
		{"/messages/1", `{"messageText":""}`, http.StatusBadRequest, `{"error":"` + ErrInvalidMessageText.Error() + `"}`},
		{"/messages/1", `{`, http.StatusBadRequest, `{"error":"` + ErrMalformedRequest.Error() + `"}`},
		{"/messages/x", `{"messageText":"b"}`, http.StatusBadRequest, `{"error":"` + ErrInvalidID.Error() + `"}`},
		{"/messages/1", `{"messageText":"updated","postedBy":3}`, http.StatusOK, `1`},
	}

	for _, tt := range tests {
		w := serve(router, http.MethodPatch, tt.url, tt.req)

		assert.Equal(t, tt.wantCode, w.Code, tt.url+" "+tt.req)
		assert.JSONEq(t, tt.wantBody, w.Body.String(), tt.url+" "+tt.req)
	}

	w := serve(router, http.MethodGet, "/messages/1", "")
	assert.JSONEq(t, `{"messageId":1,"postedBy":1,"messageText":"updated","timePostedEpoch":5}`, w.Body.String())
}

func TestGetAccountMessagesHandler(t *testing.T) {
	router, _ := newTestRouter(t)
	serve(router, http.MethodPost, "/messages", `{"postedBy":1,"messageText":"a","timePostedEpoch":1}`)

	w := serve(router, http.MethodGet, "/accounts/1/messages", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"messageId":1,"postedBy":1,"messageText":"a","timePostedEpoch":1}]`, w.Body.String())

	w = serve(router, http.MethodGet, "/accounts/2/messages", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandlerHidesUnexpectedErrors(t *testing.T) {
	router := httprouter.New()
	RegisterRoutes(router, NewService(&failingMessages{err: errors.New("pq: connection refused")}, auth.NewAccountRepository(), nil))

	w := serve(router, http.MethodGet, "/messages", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred"}`, w.Body.String())
}
