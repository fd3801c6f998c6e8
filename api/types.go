package api

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler  projectHandler
	feedbackHandler feedbackHandler
	contactHandler  contactHandler
}

// Store interfaces, satisfied by the database repos and mocked in tests.

type projectStore interface {
	FindAll(category string) ([]*models.Project, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Add(project *models.Project) error
	Update(project *models.Project) error
	Delete(id uuid.UUID) error
}

type feedbackStore interface {
	FindApproved(limit int) ([]*models.Feedback, error)
	FindPage(q database.FeedbackQuery) ([]*models.Feedback, int64, error)
	FindByID(id uuid.UUID) (*models.Feedback, error)
	Add(feedback *models.Feedback) error
	Update(feedback *models.Feedback) error
	Delete(id uuid.UUID) error
}

type contactStore interface {
	Add(message *models.ContactMessage) error
	FindAll() ([]*models.ContactMessage, error)
}

// Collaborator interfaces.

type imageStorage interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

type ownerNotifier interface {
	ContactReceived(ctx context.Context, m *models.ContactMessage)
}

type sessionValidator interface {
	Validate(ctx context.Context, sessionToken string) bool
}

// Request payloads.

type projectPayload struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Image        string   `json:"image"`
	Category     string   `json:"category" validate:"required"`
	Technologies []string `json:"technologies"`
	LiveLink     *string  `json:"liveLink"`
	CodeLink     *string  `json:"codeLink"`
	Challenge    string   `json:"challenge"`
	Solution     string   `json:"solution"`
}

// projectUpdatePayload carries partial updates: nil means "leave untouched".
type projectUpdatePayload struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Image        *string   `json:"image"`
	Category     *string   `json:"category"`
	Technologies *[]string `json:"technologies"`
	LiveLink     *string   `json:"liveLink"`
	CodeLink     *string   `json:"codeLink"`
	Challenge    *string   `json:"challenge"`
	Solution     *string   `json:"solution"`
}

// Rating is a pointer so an explicit 0 fails the range check below rather
// than reading as an omitted field. The bounds live in the models package.
type feedbackPayload struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
	Rating  *int   `json:"rating" validate:"required"`
}

type approvalPayload struct {
	Approved *bool `json:"approved"`
}

type contactPayload struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=5"`
	Message string `json:"message" validate:"required,min=10"`
}

// Response shapes.

// ProjectResponse is a project with its technology tags flattened to the
// plain string list the UI renders.
type ProjectResponse struct {
	models.Project
	Technologies []string `json:"technologies"`
}

func newProjectResponse(p models.Project) ProjectResponse {
	return ProjectResponse{Project: p, Technologies: p.TechnologyValues()}
}

// ProjectCollection represents multiple projects
type ProjectCollection struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
}

// FeedbackCollection is the public feedback feed
type FeedbackCollection struct {
	Feedback []*models.Feedback `json:"feedback"`
	Total    int                `json:"total"`
}

// FeedbackPage is one page of the admin feedback feed
type FeedbackPage struct {
	Feedback   []*models.Feedback `json:"feedback"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

// ContactMessageCollection is the owner's inbox listing
type ContactMessageCollection struct {
	Messages []*models.ContactMessage `json:"messages"`
	Total    int                      `json:"total"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// Payload validation.

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validatePayload runs struct validation and converts the first failure into
// an ApiErr the responder knows how to render.
func validatePayload(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return errs.NewBadRequestError("invalid payload")
	}

	fe := fieldErrors[0]
	switch fe.Tag() {
	case "required":
		return errs.NewMissingRequiredFieldError(fe.Field())
	case "email":
		return errs.NewInvalidFieldError(fe.Field(), "must be a valid email address")
	case "min":
		return errs.NewInvalidFieldError(fe.Field(), "must be at least "+fe.Param())
	case "max":
		return errs.NewInvalidFieldError(fe.Field(), "must be at most "+fe.Param())
	default:
		return errs.NewInvalidFieldError(fe.Field(), "failed "+fe.Tag()+" validation")
	}
}
