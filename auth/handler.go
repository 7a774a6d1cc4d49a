package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/jimiolaniyan/socialmedia/logger"
)

var ErrMalformedRequest = errors.New("malformed request body")

const unexpectedErrorMessage = "An unexpected error occurred"

// RegisterRoutes mounts the registration and login endpoints on router.
func RegisterRoutes(router *httprouter.Router, svc Service) {
	router.Handler(http.MethodPost, "/register", RegisterAccountHandler(svc))
	router.Handler(http.MethodPost, "/login", LoginHandler(svc))
}

func RegisterAccountHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeAccountRequest(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			encodeError(r.Context(), ErrMalformedRequest, w)
			return
		}

		acc, err := svc.Register(r.Context(), req)
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		encodeAccount(r.Context(), w, acc)
	})
}

func LoginHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeAccountRequest(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			encodeError(r.Context(), ErrMalformedRequest, w)
			return
		}

		acc, err := svc.Login(r.Context(), req)
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		encodeAccount(r.Context(), w, acc)
	})
}

func encodeAccount(ctx context.Context, w http.ResponseWriter, acc Account) {
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(acc); err != nil {
		logger.FromContext(ctx).WithError(err).Error("error encoding account response")
	}
}

func encodeError(ctx context.Context, err error, w http.ResponseWriter) {
	msg := err.Error()
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, ErrExistingUsername):
		w.WriteHeader(http.StatusConflict)
	case errors.Is(err, ErrInvalidUsername), errors.Is(err, ErrInvalidPassword), errors.Is(err, ErrMalformedRequest):
		w.WriteHeader(http.StatusBadRequest)
	default:
		logger.FromContext(ctx).WithError(err).Error("unexpected account error")
		msg = unexpectedErrorMessage
		w.WriteHeader(http.StatusInternalServerError)
	}
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"error": msg,
	}); err != nil {
		logger.FromContext(ctx).WithError(err).Error("error encoding error response")
	}
}

func decodeAccountRequest(body io.ReadCloser) (Account, error) {
	req := Account{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return Account{}, err
	}
	return req, nil
}
