package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo contactStore
	notifier    ownerNotifier
}

func newContactHandler(contactRepo contactStore, notifier ownerNotifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

// submitMessage accepts a public contact-form submission. The message is
// stored first; owner notification is best-effort and never fails the
// request once the record is persisted.
func (h contactHandler) submitMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload contactPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode contact request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("contact message", err))
			return
		}

		if err := validatePayload(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := models.ContactMessage{
			Name:    payload.Name,
			Email:   payload.Email,
			Subject: payload.Subject,
			Message: payload.Message,
		}

		if err := h.contactRepo.Add(&message); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "contact message", err))
			return
		}

		if h.notifier != nil {
			h.notifier.ContactReceived(r.Context(), &message)
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, message)
	}
}

// listMessages is the owner's inbox. Admin only; messages have no public
// read surface.
func (h contactHandler) listMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.responder.CheckContextTimeout(w, r) {
			return
		}

		messages, err := h.contactRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact messages", err))
			return
		}
		if messages == nil {
			messages = []*models.ContactMessage{}
		}

		h.responder.WriteJSON(w, ContactMessageCollection{
			Messages: messages,
			Total:    len(messages),
		})
	}
}
