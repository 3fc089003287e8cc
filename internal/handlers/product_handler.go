package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/services"
	"github.com/arzan03/StoreFront/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// AddProduct accepts a multipart form: name, description, category,
// isTrending, sizes (a JSON array of {size, price}) and one or more "images"
// files.
func (h *ProductHandler) AddProduct(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperr.InvalidArgument("expected a multipart form")
	}

	var sizes []models.SizePrice
	if raw := c.FormValue("sizes"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &sizes); err != nil {
			return apperr.InvalidArgument("invalid sizes format")
		}
	}
	trending, _ := strconv.ParseBool(c.FormValue("isTrending"))

	in := services.NewProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Sizes:       sizes,
		IsTrending:  trending,
		Images:      uploads(form.File["images"]),
	}

	product, err := h.products.AddProduct(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Product added successfully", product)
}

func uploads(files []*multipart.FileHeader) []storage.Upload {
	out := make([]storage.Upload, 0, len(files))
	for _, fh := range files {
		fh := fh
		out = append(out, storage.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return out
}

func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.products.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "All products", products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "product")
	if err != nil {
		return err
	}

	product, err := h.products.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Product found", product)
}

func (h *ProductHandler) RemoveProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "product")
	if err != nil {
		return err
	}

	if err := h.products.RemoveProduct(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Product removed successfully", nil)
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	products, err := h.products.Search(c.UserContext(), c.Query("query"))
	if err != nil {
		return err
	}
	return respondList(c, "", products)
}

func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	products, err := h.products.ByCategory(c.UserContext(), c.Params("category"))
	if err != nil {
		return err
	}
	return respondList(c, "", products)
}

func (h *ProductHandler) CategoryShowcase(c *fiber.Ctx) error {
	products, err := h.products.CategoryShowcase(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "", products)
}

func (h *ProductHandler) Trending(c *fiber.Ctx) error {
	products, err := h.products.Trending(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "", products)
}

func (h *ProductHandler) ChangeCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "product")
	if err != nil {
		return err
	}
	var request struct {
		Category string `json:"category"`
	}
	if err := parseBody(c, &request); err != nil {
		return err
	}

	product, err := h.products.ChangeCategory(c.UserContext(), id, request.Category)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Category updated", product)
}

func (h *ProductHandler) AddReview(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId", "product")
	if err != nil {
		return err
	}
	var request services.ReviewInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	product, err := h.products.AddReview(c.UserContext(), caller, productID, request)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Review added", product)
}

func (h *ProductHandler) EditReview(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId", "product")
	if err != nil {
		return err
	}
	reviewID, err := paramID(c, "reviewId", "review")
	if err != nil {
		return err
	}
	var request services.ReviewEdit
	if err := parseBody(c, &request); err != nil {
		return err
	}

	product, err := h.products.EditReview(c.UserContext(), caller, productID, reviewID, request)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Review updated", product)
}

func (h *ProductHandler) DeleteReview(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId", "product")
	if err != nil {
		return err
	}
	reviewID, err := paramID(c, "reviewId", "review")
	if err != nil {
		return err
	}

	product, err := h.products.DeleteReview(c.UserContext(), caller, productID, reviewID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Review deleted", product)
}
