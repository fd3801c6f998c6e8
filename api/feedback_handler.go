package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// publicFeedLimit is the display quota of the public testimonial feed.
const publicFeedLimit = 6

type feedbackHandler struct {
	responder    Responder
	logger       zerolog.Logger
	feedbackRepo feedbackStore
}

func newFeedbackHandler(feedbackRepo feedbackStore) feedbackHandler {
	logger := log.With().Str("handlerName", "feedbackHandler").Logger()

	return feedbackHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		feedbackRepo: feedbackRepo,
	}
}

// listApproved is the public feed: approved records only, newest first,
// capped at the display quota. Pending records never appear here.
func (h feedbackHandler) listApproved() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.responder.CheckContextTimeout(w, r) {
			return
		}

		feedback, err := h.feedbackRepo.FindApproved(publicFeedLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "feedback", err))
			return
		}
		if feedback == nil {
			feedback = []*models.Feedback{}
		}

		h.responder.WriteJSON(w, FeedbackCollection{
			Feedback: feedback,
			Total:    len(feedback),
		})
	}
}

// submitFeedback accepts a public testimonial submission. The record is
// created pending; only a later admin approval makes it publicly visible.
func (h feedbackHandler) submitFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload feedbackPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode feedback request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("feedback", err))
			return
		}

		if err := validatePayload(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if *payload.Rating < models.MinRating || *payload.Rating > models.MaxRating {
			h.responder.WriteError(w, errs.NewInvalidFieldError("rating",
				fmt.Sprintf("must be between %d and %d", models.MinRating, models.MaxRating)))
			return
		}

		feedback := models.Feedback{
			Name:    payload.Name,
			Email:   payload.Email,
			Message: payload.Message,
			Rating:  *payload.Rating,
		}

		if err := h.feedbackRepo.Add(&feedback); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "feedback", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, feedback)
	}
}

// listForAdmin is the moderation feed: every record, with caller-specified
// filter, sort and page over a fixed page size.
func (h feedbackHandler) listForAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.responder.CheckContextTimeout(w, r) {
			return
		}

		query, err := parseFeedbackQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		feedback, total, err := h.feedbackRepo.FindPage(query)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "feedback", err))
			return
		}
		if feedback == nil {
			feedback = []*models.Feedback{}
		}

		totalPages := int((total + int64(query.PageSize) - 1) / int64(query.PageSize))

		h.responder.WriteJSON(w, FeedbackPage{
			Feedback:   feedback,
			Total:      total,
			Page:       query.Page,
			PageSize:   query.PageSize,
			TotalPages: totalPages,
		})
	}
}

// setApproved toggles the moderation flag. Both directions are allowed and
// the transition is last-write-wins.
func (h feedbackHandler) setApproved() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feedbackID, err := parseIDParam(r, "feedbackID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload approvalPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode approval request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("approval", err))
			return
		}
		if payload.Approved == nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("approved"))
			return
		}

		feedback, err := h.feedbackRepo.FindByID(feedbackID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "feedback", err))
			return
		}
		if feedback == nil {
			h.responder.WriteError(w, errs.NewNotFound("feedback"))
			return
		}

		feedback.Approved = *payload.Approved
		if err := h.feedbackRepo.Update(feedback); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "feedback", err))
			return
		}

		h.responder.WriteJSON(w, feedback)
	}
}

// deleteFeedback permanently removes a feedback record by ID
func (h feedbackHandler) deleteFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feedbackID, err := parseIDParam(r, "feedbackID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		feedback, err := h.feedbackRepo.FindByID(feedbackID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "feedback", err))
			return
		}
		if feedback == nil {
			h.responder.WriteError(w, errs.NewNotFound("feedback"))
			return
		}

		if err := h.feedbackRepo.Delete(feedbackID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "feedback", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "feedback deleted successfully",
		})
	}
}

func parseFeedbackQuery(r *http.Request) (database.FeedbackQuery, error) {
	q := database.FeedbackQuery{
		Filter: r.URL.Query().Get("filter"),
		Sort:   r.URL.Query().Get("sort"),
		Order:  r.URL.Query().Get("order"),
	}

	switch q.Filter {
	case "", database.FilterAll, database.FilterApproved, database.FilterPending:
	default:
		return q, errs.NewInvalidFieldError("filter", "must be one of all, approved, pending")
	}
	switch q.Sort {
	case "", database.SortDate, database.SortRating:
	default:
		return q, errs.NewInvalidFieldError("sort", "must be one of date, rating")
	}
	switch q.Order {
	case "", database.OrderAsc, database.OrderDesc:
	default:
		return q, errs.NewInvalidFieldError("order", "must be one of asc, desc")
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return q, errs.NewInvalidFieldError("page", "must be a positive integer")
		}
		q.Page = page
	}

	return q.Normalize(), nil
}
