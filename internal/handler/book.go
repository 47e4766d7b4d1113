package handler

import (
	"net/http"

	"pageturn/internal/config"
	"pageturn/internal/dto"
	"pageturn/internal/middleware"
	"pageturn/internal/service"

	"github.com/labstack/echo/v4"
)

const imageField = "image"

type BookHandler struct {
	bookService service.BookService
	uploadCfg   config.Upload
}

func NewBookHandler(bookService service.BookService, uploadCfg config.Upload) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		uploadCfg:   uploadCfg,
	}
}

func (h *BookHandler) SellBook(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SellBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	image, err := bufferUpload(c, imageField, h.uploadCfg.MaxBytes, h.uploadCfg.TempDir)
	if err != nil {
		return err
	}

	book, err := h.bookService.CreateListing(ctx, middleware.UserID(c), &req, image)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, &dto.ListingResponse{
		Success: true,
		Message: "Book listed successfully. Waiting for admin approval.",
		Data:    book,
	})
}

func (h *BookHandler) GetBook(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.bookService.GetBook(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.BookResponse{
		Success: true,
		Book:    book,
	})
}

func (h *BookHandler) ListBooks(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListApproved(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.BooksResponse{
		Success: true,
		Books:   books,
	})
}

func (h *BookHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateBookStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	book, err := h.bookService.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.BookResponse{
		Success: true,
		Book:    book,
	})
}
