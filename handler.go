package socialmedia

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/jimiolaniyan/socialmedia/logger"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// RegisterRoutes mounts the message endpoints on router.
func RegisterRoutes(router *httprouter.Router, svc Service) {
	router.Handler(http.MethodPost, "/messages", CreateMessageHandler(svc))
	router.Handler(http.MethodGet, "/messages", GetMessagesHandler(svc))
	router.Handler(http.MethodGet, "/messages/:messageId", GetMessageHandler(svc))
	router.Handler(http.MethodDelete, "/messages/:messageId", DeleteMessageHandler(svc))
	router.Handler(http.MethodPatch, "/messages/:messageId", UpdateMessageHandler(svc))
	router.Handler(http.MethodGet, "/accounts/:accountId/messages", GetAccountMessagesHandler(svc))
}

func CreateMessageHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeMessageRequest(r)
		if err != nil {
			encodeError(r.Context(), ErrMalformedRequest, w)
			return
		}

		m, err := svc.AddNewMessage(r.Context(), req)
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		encodeJSON(r.Context(), w, m)
	})
}

func GetMessagesHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		messages, err := svc.RetrieveMessages(r.Context())
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		encodeJSON(r.Context(), w, messages)
	})
}

func GetMessageHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := intParam(r, "messageId")
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		m, err := svc.RetrieveMessageByID(r.Context(), id)
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		if m == nil {
			w.WriteHeader(http.StatusOK)
			return
		}
		encodeJSON(r.Context(), w, m)
	})
}

func DeleteMessageHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := intParam(r, "messageId")
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		deleted, err := svc.DeleteMessageByID(r.Context(), id)
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		encodeRowCount(r.Context(), w, deleted)
	})
}

func UpdateMessageHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := intParam(r, "messageId")
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		req, err := decodeMessageRequest(r)
		if err != nil {
			encodeError(r.Context(), ErrMalformedRequest, w)
			return
		}

		updated, err := svc.UpdateMessageByID(r.Context(), req, id)
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		encodeRowCount(r.Context(), w, updated)
	})
}

func GetAccountMessagesHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, err := intParam(r, "accountId")
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		messages, err := svc.RetrieveMessagesByAccountID(r.Context(), accountID)
		if err != nil {
			encodeError(r.Context(), err, w)
			return
		}

		encodeJSON(r.Context(), w, messages)
	})
}

// encodeRowCount writes 1 when a row was affected and an empty body otherwise.
func encodeRowCount(ctx context.Context, w http.ResponseWriter, affected bool) {
	if !affected {
		w.WriteHeader(http.StatusOK)
		return
	}
	encodeJSON(ctx, w, 1)
}

func encodeJSON(ctx context.Context, w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(ctx).WithError(err).Error("error encoding response")
	}
}

func encodeError(ctx context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	msg := err.Error()
	switch {
	case errors.Is(err, ErrMessageNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrInvalidMessageText), errors.Is(err, ErrInvalidAuthor),
		errors.Is(err, ErrInvalidID), errors.Is(err, ErrMalformedRequest):
		w.WriteHeader(http.StatusBadRequest)
	default:
		logger.FromContext(ctx).WithError(err).Error("unexpected message error")
		msg = unexpectedErrorMessage
		w.WriteHeader(http.StatusInternalServerError)
	}
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"error": msg,
	}); err != nil {
		logger.FromContext(ctx).WithError(err).Error("error encoding error response")
	}
}

func decodeMessageRequest(r *http.Request) (Message, error) {
	m := Message{}
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		return Message{}, err
	}
	return m, nil
}

func intParam(r *http.Request, name string) (int, error) {
	v := httprouter.ParamsFromContext(r.Context()).ByName(name)
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
