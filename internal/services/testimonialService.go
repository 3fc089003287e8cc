package services

import (
	"context"
	"strings"
	"time"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestimonialService manages site-wide reviews that are not tied to a
// product.
type TestimonialService struct {
	testimonials store.TestimonialStore
	log          *logger.Logger
}

func NewTestimonialService(testimonials store.TestimonialStore, log *logger.Logger) *TestimonialService {
	return &TestimonialService{testimonials: testimonials, log: log.WithComponent("testimonials")}
}

type TestimonialInput struct {
	Comment string  `json:"comment" validate:"required"`
	Rating  float64 `json:"rating" validate:"gte=1,lte=5"`
}

func (s *TestimonialService) Create(ctx context.Context, caller models.Caller, in TestimonialInput) (*models.Testimonial, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &models.Testimonial{
		ID:        primitive.NewObjectID(),
		UserID:    caller.UserID,
		Comment:   in.Comment,
		Rating:    in.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, apperr.Internal("failed to save review", err)
	}
	return t, nil
}

func (s *TestimonialService) List(ctx context.Context) ([]models.Testimonial, error) {
	out, err := s.testimonials.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list reviews", err)
	}
	return out, nil
}

// Update replaces comment and rating. Only the author or an admin may do it.
func (s *TestimonialService) Update(ctx context.Context, caller models.Caller, id primitive.ObjectID, in TestimonialInput) (*models.Testimonial, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	t, err := s.testimonials.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "review not found")
	}
	if t.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, apperr.Forbidden("review belongs to another user")
	}

	t.Comment = in.Comment
	t.Rating = in.Rating
	if err := s.testimonials.Update(ctx, t); err != nil {
		return nil, storeErr(err, "review not found")
	}
	return t, nil
}

func (s *TestimonialService) Delete(ctx context.Context, caller models.Caller, id primitive.ObjectID) (*models.Testimonial, error) {
	t, err := s.testimonials.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "review not found")
	}
	if t.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, apperr.Forbidden("review belongs to another user")
	}

	deleted, err := s.testimonials.Delete(ctx, id)
	if err != nil {
		return nil, storeErr(err, "review not found")
	}
	return deleted, nil
}

func (s *TestimonialService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.testimonials.DeleteAll(ctx)
	if err != nil {
		return 0, apperr.Internal("failed to delete reviews", err)
	}
	s.log.Warn("all reviews deleted", "count", n)
	return n, nil
}
