package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-backend/models"
)

func newProjectRouter(h projectHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/projects", h.listProjects())
	r.Get("/projects/{projectID}", h.getProject())
	r.Post("/projects", h.createProject())
	r.Patch("/projects/{projectID}", h.updateProject())
	r.Delete("/projects/{projectID}", h.deleteProject())
	return r
}

func TestProjectHandler_ListProjects(t *testing.T) {
	live := "https://shop.example.com"
	stored := []*models.Project{
		{ID: uuid.New(), Title: "Shop", Category: models.CategoryWeb, LiveLink: &live,
			Technologies: []models.ProjectTechnology{{Value: "Go", Position: 0}, {Value: "React", Position: 1}}},
	}

	tests := []struct {
		name             string
		url              string
		expectedCategory string
		queryStore       bool
		expectedStatus   int
	}{
		{
			name:             "no filter returns everything",
			url:              "/projects",
			expectedCategory: "",
			queryStore:       true,
			expectedStatus:   http.StatusOK,
		},
		{
			name:             "all is the same as no filter",
			url:              "/projects?category=all",
			expectedCategory: "",
			queryStore:       true,
			expectedStatus:   http.StatusOK,
		},
		{
			name:             "category filter is passed through",
			url:              "/projects?category=mobile",
			expectedCategory: models.CategoryMobile,
			queryStore:       true,
			expectedStatus:   http.StatusOK,
		},
		{
			name:           "unknown category rejected",
			url:            "/projects?category=desktop",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockProjectStore{}
			if tt.queryStore {
				store.On("FindAll", tt.expectedCategory).Return(stored, nil)
			}

			router := newProjectRouter(newProjectHandler(store, nil))
			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			store.AssertExpectations(t)

			if tt.queryStore {
				var collection ProjectCollection
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collection))
				require.Equal(t, 1, collection.Total)
				assert.Equal(t, "Shop", collection.Projects[0].Title)
				assert.Equal(t, []string{"Go", "React"}, collection.Projects[0].Technologies)
			} else {
				store.AssertNotCalled(t, "FindAll", mock.Anything)
			}
		})
	}
}

func TestProjectHandler_GetProject(t *testing.T) {
	projectID := uuid.New()

	t.Run("found", func(t *testing.T) {
		store := &MockProjectStore{}
		store.On("FindByID", projectID).Return(&models.Project{ID: projectID, Title: "Shop"}, nil)

		router := newProjectRouter(newProjectHandler(store, nil))
		req := httptest.NewRequest("GET", "/projects/"+projectID.String(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		store := &MockProjectStore{}
		store.On("FindByID", projectID).Return(nil, nil)

		router := newProjectRouter(newProjectHandler(store, nil))
		req := httptest.NewRequest("GET", "/projects/"+projectID.String(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProjectHandler_CreateProject(t *testing.T) {
	projectID := uuid.New()

	t.Run("json body carries technologies into the single write", func(t *testing.T) {
		store := &MockProjectStore{}
		store.On("Add", mock.MatchedBy(func(p *models.Project) bool {
			return assert.ObjectsAreEqual([]string{"Go", "React"}, p.TechnologyValues()) &&
				p.Technologies[0].Position == 0 && p.Technologies[1].Position == 1
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Project).ID = projectID
		}).Return(nil)
		store.On("FindByID", projectID).Return(&models.Project{
			ID: projectID, Title: "Shop", Category: models.CategoryWeb,
			Technologies: []models.ProjectTechnology{{Value: "Go", Position: 0}, {Value: "React", Position: 1}},
		}, nil)

		router := newProjectRouter(newProjectHandler(store, nil))
		body := `{"title":"Shop","description":"An online shop","category":"web","technologies":["Go","React"]}`
		req := httptest.NewRequest("POST", "/projects", strings.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		store.AssertExpectations(t)

		var created ProjectResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, []string{"Go", "React"}, created.Technologies)
	})

	t.Run("failed write fails the whole request", func(t *testing.T) {
		store := &MockProjectStore{}
		store.On("Add", mock.AnythingOfType("*models.Project")).
			Return(errors.New(`duplicate key value violates unique constraint "idx_project_technology_unique"`))

		router := newProjectRouter(newProjectHandler(store, nil))
		body := `{"title":"Shop","description":"An online shop","category":"web","technologies":["Go","Go"]}`
		req := httptest.NewRequest("POST", "/projects", strings.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		store.AssertNotCalled(t, "FindByID", mock.Anything)
	})

	t.Run("missing image falls back to placeholder", func(t *testing.T) {
		store := &MockProjectStore{}
		store.On("Add", mock.MatchedBy(func(p *models.Project) bool {
			return p.Image == placeholderImage
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Project).ID = projectID
		}).Return(nil)
		store.On("FindByID", projectID).Return(&models.Project{ID: projectID, Image: placeholderImage}, nil)

		router := newProjectRouter(newProjectHandler(store, nil))
		body := `{"title":"Shop","description":"An online shop","category":"web"}`
		req := httptest.NewRequest("POST", "/projects", strings.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		store.AssertExpectations(t)
	})

	t.Run("unknown category rejected before storage", func(t *testing.T) {
		store := &MockProjectStore{}

		router := newProjectRouter(newProjectHandler(store, nil))
		body := `{"title":"Shop","description":"An online shop","category":"desktop"}`
		req := httptest.NewRequest("POST", "/projects", strings.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Add", mock.Anything)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		store := &MockProjectStore{}

		router := newProjectRouter(newProjectHandler(store, nil))
		body := `{"description":"An online shop","category":"web"}`
		req := httptest.NewRequest("POST", "/projects", strings.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Add", mock.Anything)
	})

	t.Run("multipart form with image upload", func(t *testing.T) {
		uploadedURL := "https://cdn.example.com/projects/shop.png"

		uploader := &MockImageStorage{}
		uploader.On("Upload", mock.Anything, "shop.png", mock.Anything, mock.Anything).Return(uploadedURL, nil)

		store := &MockProjectStore{}
		store.On("Add", mock.MatchedBy(func(p *models.Project) bool {
			// Comma-separated technologies are split into individual tags.
			return p.Image == uploadedURL &&
				assert.ObjectsAreEqual([]string{"Go", "React"}, p.TechnologyValues())
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Project).ID = projectID
		}).Return(nil)
		store.On("FindByID", projectID).Return(&models.Project{ID: projectID, Image: uploadedURL}, nil)

		body := &bytes.Buffer{}
		form := multipart.NewWriter(body)
		require.NoError(t, form.WriteField("title", "Shop"))
		require.NoError(t, form.WriteField("description", "An online shop"))
		require.NoError(t, form.WriteField("category", "web"))
		require.NoError(t, form.WriteField("technologies", "Go, React"))
		part, err := form.CreateFormFile("image", "shop.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("not-really-a-png"))
		require.NoError(t, err)
		require.NoError(t, form.Close())

		router := newProjectRouter(newProjectHandler(store, uploader))
		req := httptest.NewRequest("POST", "/projects", body)
		req.Header.Set("Content-Type", form.FormDataContentType())
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		uploader.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("image file without configured storage", func(t *testing.T) {
		store := &MockProjectStore{}

		body := &bytes.Buffer{}
		form := multipart.NewWriter(body)
		require.NoError(t, form.WriteField("title", "Shop"))
		require.NoError(t, form.WriteField("description", "An online shop"))
		require.NoError(t, form.WriteField("category", "web"))
		part, err := form.CreateFormFile("image", "shop.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("not-really-a-png"))
		require.NoError(t, err)
		require.NoError(t, form.Close())

		router := newProjectRouter(newProjectHandler(store, nil))
		req := httptest.NewRequest("POST", "/projects", body)
		req.Header.Set("Content-Type", form.FormDataContentType())
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Add", mock.Anything)
	})
}

func TestProjectHandler_UpdateProject(t *testing.T) {
	projectID := uuid.New()

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		existing := &models.Project{
			ID: projectID, Title: "Shop", Description: "An online shop",
			Category: models.CategoryWeb, Image: placeholderImage,
		}

		store := &MockProjectStore{}
		store.On("FindByID", projectID).Return(existing, nil)
		store.On("Update", mock.MatchedBy(func(p *models.Project) bool {
			// No technologies in the payload: the store must not touch tags.
			return p.Title == "Storefront" && p.Description == "An online shop" &&
				p.Technologies == nil
		})).Return(nil)

		router := newProjectRouter(newProjectHandler(store, nil))
		req := httptest.NewRequest("PATCH", "/projects/"+projectID.String(), strings.NewReader(`{"title":"Storefront"}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		store.AssertExpectations(t)

		var updated ProjectResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Storefront", updated.Title)
		assert.Equal(t, "An online shop", updated.Description)
	})

	t.Run("technologies are replaced wholesale", func(t *testing.T) {
		existing := &models.Project{ID: projectID, Title: "Shop", Description: "d", Category: models.CategoryWeb}

		store := &MockProjectStore{}
		store.On("FindByID", projectID).Return(existing, nil)
		store.On("Update", mock.MatchedBy(func(p *models.Project) bool {
			return assert.ObjectsAreEqual([]string{"Svelte"}, p.TechnologyValues())
		})).Return(nil)

		router := newProjectRouter(newProjectHandler(store, nil))
		req := httptest.NewRequest("PATCH", "/projects/"+projectID.String(),
			strings.NewReader(`{"technologies":["Svelte"]}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		store.AssertExpectations(t)
	})

	t.Run("failed write fails the whole request", func(t *testing.T) {
		existing := &models.Project{ID: projectID, Title: "Shop", Description: "d", Category: models.CategoryWeb}

		store := &MockProjectStore{}
		store.On("FindByID", projectID).Return(existing, nil)
		store.On("Update", mock.AnythingOfType("*models.Project")).
			Return(errors.New("pq: connection reset by peer"))

		router := newProjectRouter(newProjectHandler(store, nil))
		req := httptest.NewRequest("PATCH", "/projects/"+projectID.String(),
			strings.NewReader(`{"technologies":["Svelte"]}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.GreaterOrEqual(t, w.Code, http.StatusInternalServerError)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		store := &MockProjectStore{}
		store.On("FindByID", projectID).Return(&models.Project{ID: projectID, Title: "Shop"}, nil)

		router := newProjectRouter(newProjectHandler(store, nil))
		req := httptest.NewRequest("PATCH", "/projects/"+projectID.String(), strings.NewReader(`{"title":""}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("unknown project", func(t *testing.T) {
		store := &MockProjectStore{}
		store.On("FindByID", projectID).Return(nil, nil)

		router := newProjectRouter(newProjectHandler(store, nil))
		req := httptest.NewRequest("PATCH", "/projects/"+projectID.String(), strings.NewReader(`{"title":"Storefront"}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		store.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestProjectHandler_DeleteProject(t *testing.T) {
	projectID := uuid.New()

	t.Run("successful deletion", func(t *testing.T) {
		store := &MockProjectStore{}
		store.On("FindByID", projectID).Return(&models.Project{ID: projectID}, nil)
		store.On("Delete", projectID).Return(nil)

		router := newProjectRouter(newProjectHandler(store, nil))
		req := httptest.NewRequest("DELETE", "/projects/"+projectID.String(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		store.AssertExpectations(t)
	})

	t.Run("unknown project", func(t *testing.T) {
		store := &MockProjectStore{}
		store.On("FindByID", projectID).Return(nil, nil)

		router := newProjectRouter(newProjectHandler(store, nil))
		req := httptest.NewRequest("DELETE", "/projects/"+projectID.String(), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		store.AssertNotCalled(t, "Delete", mock.Anything)
	})
}
