package api

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
)

type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) FindAll(category string) ([]*models.Project, error) {
	args := m.Called(category)
	var projects []*models.Project
	if v := args.Get(0); v != nil {
		projects = v.([]*models.Project)
	}
	return projects, args.Error(1)
}

func (m *MockProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	args := m.Called(id)
	var project *models.Project
	if v := args.Get(0); v != nil {
		project = v.(*models.Project)
	}
	return project, args.Error(1)
}

func (m *MockProjectStore) Add(project *models.Project) error {
	return m.Called(project).Error(0)
}

func (m *MockProjectStore) Update(project *models.Project) error {
	return m.Called(project).Error(0)
}

func (m *MockProjectStore) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

type MockFeedbackStore struct {
	mock.Mock
}

func (m *MockFeedbackStore) FindApproved(limit int) ([]*models.Feedback, error) {
	args := m.Called(limit)
	var feedback []*models.Feedback
	if v := args.Get(0); v != nil {
		feedback = v.([]*models.Feedback)
	}
	return feedback, args.Error(1)
}

func (m *MockFeedbackStore) FindPage(q database.FeedbackQuery) ([]*models.Feedback, int64, error) {
	args := m.Called(q)
	var feedback []*models.Feedback
	if v := args.Get(0); v != nil {
		feedback = v.([]*models.Feedback)
	}
	return feedback, args.Get(1).(int64), args.Error(2)
}

func (m *MockFeedbackStore) FindByID(id uuid.UUID) (*models.Feedback, error) {
	args := m.Called(id)
	var feedback *models.Feedback
	if v := args.Get(0); v != nil {
		feedback = v.(*models.Feedback)
	}
	return feedback, args.Error(1)
}

func (m *MockFeedbackStore) Add(feedback *models.Feedback) error {
	return m.Called(feedback).Error(0)
}

func (m *MockFeedbackStore) Update(feedback *models.Feedback) error {
	return m.Called(feedback).Error(0)
}

func (m *MockFeedbackStore) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

type MockContactStore struct {
	mock.Mock
}

func (m *MockContactStore) Add(message *models.ContactMessage) error {
	return m.Called(message).Error(0)
}

func (m *MockContactStore) FindAll() ([]*models.ContactMessage, error) {
	args := m.Called()
	var messages []*models.ContactMessage
	if v := args.Get(0); v != nil {
		messages = v.([]*models.ContactMessage)
	}
	return messages, args.Error(1)
}

type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, body)
	return args.String(0), args.Error(1)
}

type MockOwnerNotifier struct {
	mock.Mock
}

func (m *MockOwnerNotifier) ContactReceived(ctx context.Context, msg *models.ContactMessage) {
	m.Called(ctx, msg)
}

type MockSessionValidator struct {
	mock.Mock
}

func (m *MockSessionValidator) Validate(ctx context.Context, sessionToken string) bool {
	return m.Called(ctx, sessionToken).Bool(0)
}
