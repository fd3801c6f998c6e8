package api

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// placeholderImage is substituted when a project is created without an image
// so stored records always carry a renderable reference.
const placeholderImage = "/placeholder.svg"

// maxUploadSize bounds the multipart form, image file included.
const maxUploadSize = 10 << 20

type projectHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projectRepo  projectStore
	imageStorage imageStorage
}

func newProjectHandler(projectRepo projectStore, imageStorage imageStorage) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projectRepo:  projectRepo,
		imageStorage: imageStorage,
	}
}

// listProjects retrieves the project catalog, optionally filtered by category.
// The synthetic category "all" (or no category at all) means no filter.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.responder.CheckContextTimeout(w, r) {
			return
		}

		category := r.URL.Query().Get("category")
		if category == models.CategoryAll {
			category = ""
		}
		if category != "" && !models.ValidCategory(category) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("category", "must be one of web, mobile, backend, ui/ux"))
			return
		}

		projects, err := h.projectRepo.FindAll(category)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		response := ProjectCollection{
			Projects: make([]ProjectResponse, 0, len(projects)),
			Total:    len(projects),
		}
		for _, project := range projects {
			response.Projects = append(response.Projects, newProjectResponse(*project))
		}

		h.responder.WriteJSON(w, response)
	}
}

// getProject retrieves a single project by ID.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		h.responder.WriteJSON(w, newProjectResponse(*project))
	}
}

// createProject creates a new project. Accepts either a JSON body or a
// multipart form carrying the fields plus an optional image file, which is
// handed to object storage; only the returned URL is persisted.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, upload, err := h.decodeCreateRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if upload != nil {
			defer upload.file.Close()
		}

		if err := validatePayload(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !models.ValidCategory(payload.Category) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("category", "must be one of web, mobile, backend, ui/ux"))
			return
		}

		image := payload.Image
		if upload != nil {
			if h.imageStorage == nil {
				h.responder.WriteError(w, errs.NewBadRequestError("image uploads are not configured"))
				return
			}
			url, err := h.imageStorage.Upload(r.Context(), upload.filename, upload.contentType, upload.file)
			if err != nil {
				h.logger.Error().Err(err).Msg("Failed to upload project image")
				h.responder.WriteError(w, errs.NewInternalError("failed to store project image"))
				return
			}
			image = url
		}
		if image == "" {
			image = placeholderImage
		}

		project := models.Project{
			Title:        payload.Title,
			Description:  payload.Description,
			Image:        image,
			Category:     payload.Category,
			LiveLink:     normalizeLink(payload.LiveLink),
			CodeLink:     normalizeLink(payload.CodeLink),
			Challenge:    payload.Challenge,
			Solution:     payload.Solution,
			Technologies: buildTechnologies(payload.Technologies),
		}

		// The tag rows ride along in Technologies, so the store writes the
		// project and its tags atomically.
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		created, err := h.projectRepo.FindByID(project.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "project", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, newProjectResponse(*created))
	}
}

// updateProject applies a partial update to an existing project. Fields
// absent from the payload stay untouched.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		var payload projectUpdatePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project update body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if payload.Title != nil {
			if *payload.Title == "" {
				h.responder.WriteError(w, errs.NewInvalidFieldError("title", "must not be empty"))
				return
			}
			project.Title = *payload.Title
		}
		if payload.Description != nil {
			if *payload.Description == "" {
				h.responder.WriteError(w, errs.NewInvalidFieldError("description", "must not be empty"))
				return
			}
			project.Description = *payload.Description
		}
		if payload.Category != nil {
			if !models.ValidCategory(*payload.Category) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("category", "must be one of web, mobile, backend, ui/ux"))
				return
			}
			project.Category = *payload.Category
		}
		if payload.Image != nil {
			project.Image = *payload.Image
			if project.Image == "" {
				project.Image = placeholderImage
			}
		}
		if payload.LiveLink != nil {
			project.LiveLink = normalizeLink(payload.LiveLink)
		}
		if payload.CodeLink != nil {
			project.CodeLink = normalizeLink(payload.CodeLink)
		}
		if payload.Challenge != nil {
			project.Challenge = *payload.Challenge
		}
		if payload.Solution != nil {
			project.Solution = *payload.Solution
		}

		// A non-nil Technologies slice tells the store to replace the tag
		// rows in the same transaction; nil leaves them untouched.
		if payload.Technologies != nil {
			project.Technologies = buildTechnologies(*payload.Technologies)
		} else {
			project.Technologies = nil
		}
		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil || updated == nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "project", err))
			return
		}

		h.responder.WriteJSON(w, newProjectResponse(*updated))
	}
}

// deleteProject deletes a project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

type imageUpload struct {
	file        multipart.File
	filename    string
	contentType string
}

func (h projectHandler) decodeCreateRequest(r *http.Request) (projectPayload, *imageUpload, error) {
	var payload projectPayload

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			return payload, nil, errs.NewMalformedPayloadError("project", err)
		}
		return payload, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return payload, nil, errs.NewMalformedPayloadError("multipart form", err)
	}

	payload.Title = r.FormValue("title")
	payload.Description = r.FormValue("description")
	payload.Image = r.FormValue("image")
	payload.Category = r.FormValue("category")
	payload.Challenge = r.FormValue("challenge")
	payload.Solution = r.FormValue("solution")
	payload.LiveLink = formValuePtr(r, "liveLink")
	payload.CodeLink = formValuePtr(r, "codeLink")
	payload.Technologies = formTechnologies(r)

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return payload, nil, nil
	case err != nil:
		return payload, nil, errs.NewMalformedPayloadError("image file", err)
	}

	return payload, &imageUpload{
		file:        file,
		filename:    header.Filename,
		contentType: header.Header.Get("Content-Type"),
	}, nil
}

// buildTechnologies turns submitted tag values into child rows in submission
// order, dropping blanks.
func buildTechnologies(values []string) []models.ProjectTechnology {
	techs := make([]models.ProjectTechnology, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		techs = append(techs, models.ProjectTechnology{
			ID:       uuid.New(),
			Value:    value,
			Position: len(techs),
		})
	}
	return techs
}

// normalizeLink maps empty strings to nil: both mean "no link".
func normalizeLink(link *string) *string {
	if link == nil || *link == "" {
		return nil
	}
	return link
}

func formValuePtr(r *http.Request, key string) *string {
	if values, ok := r.MultipartForm.Value[key]; ok && len(values) > 0 {
		return &values[0]
	}
	return nil
}

// formTechnologies reads technology tags from the form, accepting either
// repeated fields or a single comma-separated value.
func formTechnologies(r *http.Request) []string {
	values := r.MultipartForm.Value["technologies"]
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseIDParam extracts and parses a uuid URL parameter.
func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
