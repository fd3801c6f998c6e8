package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

// Admin feed query vocabulary.
const (
	FilterAll      = "all"
	FilterApproved = "approved"
	FilterPending  = "pending"

	SortDate   = "date"
	SortRating = "rating"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// DefaultPageSize matches the admin dashboard's fixed page size.
const DefaultPageSize = 6

// FeedbackQuery describes the admin feed's filter, sort and pagination.
type FeedbackQuery struct {
	Filter   string
	Sort     string
	Order    string
	Page     int
	PageSize int
}

// Normalize fills zero values with the feed defaults: all records, newest
// first, first page at the fixed page size.
func (q FeedbackQuery) Normalize() FeedbackQuery {
	if q.Filter == "" {
		q.Filter = FilterAll
	}
	if q.Sort == "" {
		q.Sort = SortDate
	}
	if q.Order == "" {
		q.Order = OrderDesc
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

type FeedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) *FeedbackRepo {
	return &FeedbackRepo{db}
}

// FindApproved returns approved feedback, newest first, capped at limit.
// Records with approved = false are never part of the result.
func (r *FeedbackRepo) FindApproved(limit int) ([]*models.Feedback, error) {
	var feedback []*models.Feedback
	query := r.db.Where("approved = ?", true).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&feedback).Error
	return feedback, err
}

// FindPage returns one page of feedback for the admin feed along with the
// total number of records matching the filter.
func (r *FeedbackRepo) FindPage(q FeedbackQuery) ([]*models.Feedback, int64, error) {
	q = q.Normalize()

	query := r.db.Model(&models.Feedback{})
	switch q.Filter {
	case FilterApproved:
		query = query.Where("approved = ?", true)
	case FilterPending:
		query = query.Where("approved = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column := "date"
	if q.Sort == SortRating {
		column = "rating"
	}
	direction := "DESC"
	if q.Order == OrderAsc {
		direction = "ASC"
	}

	var feedback []*models.Feedback
	err := query.
		Order(column + " " + direction).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&feedback).Error
	return feedback, total, err
}

// FindByID returns a feedback record by its ID, or nil when no such record exists.
func (r *FeedbackRepo) FindByID(id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.First(&feedback, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// Add inserts a new feedback record. The store owns the submission timestamp
// and the initial moderation state: every record starts out pending.
func (r *FeedbackRepo) Add(feedback *models.Feedback) error {
	feedback.Date = time.Now().UTC()
	feedback.Approved = false
	return r.db.Create(feedback).Error
}

// Update saves an existing feedback record in the database
func (r *FeedbackRepo) Update(feedback *models.Feedback) error {
	return r.db.Save(feedback).Error
}

// Delete removes a feedback record from the database by id
func (r *FeedbackRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Feedback{}, "id = ?", id).Error
}
