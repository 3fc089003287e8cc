package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/storage"
	"github.com/arzan03/StoreFront/internal/store"
	"github.com/arzan03/StoreFront/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	trendingLimit = 10
	uploadWorkers = 4
)

type ProductService struct {
	products store.ProductStore
	users    store.UserStore
	images   storage.ImageStore
	log      *logger.Logger
}

func NewProductService(products store.ProductStore, users store.UserStore, images storage.ImageStore, log *logger.Logger) *ProductService {
	return &ProductService{products: products, users: users, images: images, log: log.WithComponent("products")}
}

type NewProductInput struct {
	Name        string             `validate:"required"`
	Description string
	Category    string             `validate:"required"`
	Sizes       []models.SizePrice `validate:"required,min=1"`
	IsTrending  bool
	Images      []storage.Upload
}

type ReviewInput struct {
	Rating  float64 `json:"rating" validate:"gte=1,lte=5"`
	Comment string  `json:"comment"`
}

type ReviewEdit struct {
	Rating  *float64 `json:"rating"`
	Comment *string  `json:"comment"`
}

// Dashboard is every catalog report in one payload.
type Dashboard struct {
	Categories []models.CategoryCount `json:"categories"`
	Ratings    []models.ProductRating `json:"ratings"`
	Monthly    []models.MonthlyCount  `json:"monthly"`
	Sizes      []models.SizeCount     `json:"sizes"`
}

// AddProduct validates the listing, stores its images and inserts it.
func (s *ProductService) AddProduct(ctx context.Context, in NewProductInput) (*models.Product, error) {
	if len(in.Images) == 0 {
		return nil, apperr.InvalidArgument("at least one image is required")
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	sizes := make([]models.SizePrice, 0, len(in.Sizes))
	for _, sp := range in.Sizes {
		size, ok := models.ParseSize(sp.Size)
		if !ok {
			return nil, apperr.InvalidArgument("invalid size %q", sp.Size)
		}
		if sp.Price <= 0 {
			return nil, apperr.InvalidArgument("price for size %s must be greater than 0", size)
		}
		sizes = append(sizes, models.SizePrice{Size: size, Price: sp.Price})
	}

	for _, img := range in.Images {
		if !storage.IsImage(img.ContentType) {
			return nil, apperr.InvalidArgument("%s is not an image", img.Filename)
		}
	}

	urls, err := utils.MapBounded(ctx, uploadWorkers, in.Images, func(ctx context.Context, img storage.Upload) (string, error) {
		body, err := img.Open()
		if err != nil {
			return "", err
		}
		defer body.Close()
		return s.images.Save(ctx, img.Filename, img.ContentType, img.Size, body)
	})
	if err != nil {
		return nil, apperr.Internal("failed to store images", err)
	}

	now := time.Now()
	product := &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Sizes:       sizes,
		Images:      urls,
		IsTrending:  in.IsTrending,
		Reviews:     []models.Review{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperr.Internal("failed to create product", err)
	}

	s.log.Info("product created", "product_id", product.ID.Hex(), "images", len(urls))
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list products", err)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "product not found")
	}
	return product, nil
}

func (s *ProductService) RemoveProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return storeErr(err, "product not found")
	}
	s.log.Info("product removed", "product_id", id.Hex())
	return nil
}

// Search matches query case-insensitively against name or category.
func (s *ProductService) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.InvalidArgument("search query is required")
	}
	products, err := s.products.Search(ctx, query)
	if err != nil {
		return nil, apperr.Internal("failed to search products", err)
	}
	return products, nil
}

func (s *ProductService) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	products, err := s.products.ListByCategory(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, apperr.Internal("failed to list category", err)
	}
	return products, nil
}

// CategoryShowcase returns the oldest product of every category.
func (s *ProductService) CategoryShowcase(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.FirstPerCategory(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list categories", err)
	}
	return products, nil
}

func (s *ProductService) Trending(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.Trending(ctx, trendingLimit)
	if err != nil {
		return nil, apperr.Internal("failed to list trending products", err)
	}
	return products, nil
}

func (s *ProductService) ChangeCategory(ctx context.Context, id primitive.ObjectID, category string) (*models.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperr.InvalidArgument("category is required")
	}
	product, err := s.products.UpdateCategory(ctx, id, category)
	if err != nil {
		return nil, storeErr(err, "product not found")
	}
	return product, nil
}

// AddReview records the caller's single review of a product and refreshes
// its average rating.
func (s *ProductService) AddReview(ctx context.Context, caller models.Caller, productID primitive.ObjectID, in ReviewInput) (*models.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, storeErr(err, "product not found")
	}
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, storeErr(err, "user not found")
	}
	if product.ReviewBy(caller.UserID) >= 0 {
		return nil, apperr.Conflict("you already reviewed this product")
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Name:      user.Name,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: time.Now(),
	}
	if err := s.products.AppendReview(ctx, productID, review); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("you already reviewed this product")
		}
		return nil, storeErr(err, "product not found")
	}

	s.log.Info("review added", "product_id", productID.Hex(), "user_id", caller.UserID.Hex())
	return s.GetProduct(ctx, productID)
}

// EditReview changes the rating and/or comment of the caller's own review.
func (s *ProductService) EditReview(ctx context.Context, caller models.Caller, productID, reviewID primitive.ObjectID, in ReviewEdit) (*models.Product, error) {
	var edit store.ReviewEdit
	if in.Rating != nil {
		if err := ratingInRange(*in.Rating); err != nil {
			return nil, err
		}
		edit.Rating = in.Rating
	}
	if in.Comment != nil {
		if comment := strings.TrimSpace(*in.Comment); comment != "" {
			edit.Comment = &comment
		}
	}

	err := s.changeOwnReview(ctx, productID, func() error {
		return s.products.UpdateReview(ctx, productID, reviewID, caller.UserID, edit)
	})
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, productID)
}

func (s *ProductService) DeleteReview(ctx context.Context, caller models.Caller, productID, reviewID primitive.ObjectID) (*models.Product, error) {
	err := s.changeOwnReview(ctx, productID, func() error {
		return s.products.RemoveReview(ctx, productID, reviewID, caller.UserID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("review deleted", "product_id", productID.Hex(), "review_id", reviewID.Hex())
	return s.GetProduct(ctx, productID)
}

// changeOwnReview runs write after checking the product exists. A miss from
// write means the caller owns no such review.
func (s *ProductService) changeOwnReview(ctx context.Context, productID primitive.ObjectID, write func() error) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return storeErr(err, "product not found")
	}
	if err := write(); err != nil {
		return storeErr(err, "review not found for this user")
	}
	return nil
}

func (s *ProductService) CategoryCounts(ctx context.Context) ([]models.CategoryCount, error) {
	out, err := s.products.CountByCategory(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to build category report", err)
	}
	return out, nil
}

func (s *ProductService) Ratings(ctx context.Context) ([]models.ProductRating, error) {
	out, err := s.products.Ratings(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to build rating report", err)
	}
	return out, nil
}

func (s *ProductService) MonthlyCounts(ctx context.Context) ([]models.MonthlyCount, error) {
	out, err := s.products.MonthlyCreated(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to build monthly report", err)
	}
	return out, nil
}

func (s *ProductService) SizeCounts(ctx context.Context) ([]models.SizeCount, error) {
	out, err := s.products.CountBySize(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to build size report", err)
	}
	return out, nil
}

// Dashboard runs the four reports concurrently.
func (s *ProductService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	err := utils.RunParallel(ctx,
		func(ctx context.Context) (err error) { d.Categories, err = s.CategoryCounts(ctx); return },
		func(ctx context.Context) (err error) { d.Ratings, err = s.Ratings(ctx); return },
		func(ctx context.Context) (err error) { d.Monthly, err = s.MonthlyCounts(ctx); return },
		func(ctx context.Context) (err error) { d.Sizes, err = s.SizeCounts(ctx); return },
	)
	if err != nil {
		return nil, apperr.Internal("failed to build dashboard", err)
	}
	return &d, nil
}
