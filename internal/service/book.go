package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pageturn/internal/apperr"
	"pageturn/internal/client"
	"pageturn/internal/dto"
	"pageturn/internal/metrics"
	"pageturn/internal/model"
	"pageturn/internal/repository"
	"pageturn/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BookService interface {
	CreateListing(ctx context.Context, sellerID string, req *dto.SellBookRequest, image *model.UploadArtifact) (*model.Book, error)
	GetBook(ctx context.Context, bookID string) (*model.Book, error)
	ListApproved(ctx context.Context) ([]*model.Book, error)
	UpdateStatus(ctx context.Context, bookID string, status model.BookStatus) (*model.Book, error)
}

type bookServiceImpl struct {
	log        *zap.Logger
	validator  *validation.Validator
	mediaStore client.MediaStore
	bookRepo   repository.BookRepository
}

func NewBookService(
	log *zap.Logger,
	mediaStore client.MediaStore,
	bookRepo repository.BookRepository,
) BookService {
	return &bookServiceImpl{
		log:        log,
		validator:  validation.New(),
		mediaStore: mediaStore,
		bookRepo:   bookRepo,
	}
}

// CreateListing owns image from the moment it is called and always removes it.
func (s *bookServiceImpl) CreateListing(ctx context.Context, sellerID string, req *dto.SellBookRequest, image *model.UploadArtifact) (*model.Book, error) {
	defer func() {
		if err := image.Cleanup(); err != nil {
			s.log.Warn("remove upload artifact", zap.String("path", image.Path), zap.Error(err))
		}
	}()

	input := trimListing(req)
	if err := s.validator.Validate(&input); err != nil {
		return nil, apperr.Validation("%s", validation.Message(err))
	}

	if sellerID == "" {
		return nil, apperr.Auth("Authentication required")
	}

	if image == nil {
		return nil, apperr.Input("At least one image is required")
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil || !price.IsPositive() {
		return nil, apperr.Validation("price must be a positive number")
	}

	imageURL, err := s.mediaStore.Upload(ctx, image)
	if err != nil {
		s.log.Error("upload book image", zap.String("seller_id", sellerID), zap.Error(err))
		return nil, apperr.Upstream("upload book image", err)
	}

	book := &model.Book{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Author:      input.Author,
		ISBN:        input.ISBN,
		Price:       price,
		Condition:   input.Condition,
		Description: input.Description,
		Category:    input.Category,
		Images:      []string{imageURL},
		SellerID:    sellerID,
		Status:      model.BookStatusPending,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("store book in db: %w", err)
	}

	metrics.ListingsCreated.Inc()
	s.log.Info("book listed", zap.String("book_id", book.ID), zap.String("seller_id", sellerID))

	return book, nil
}

func (s *bookServiceImpl) GetBook(ctx context.Context, bookID string) (*model.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return book, nil
}

func (s *bookServiceImpl) ListApproved(ctx context.Context) ([]*model.Book, error) {
	books, err := s.bookRepo.FindByStatus(ctx, model.BookStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("list approved books: %w", err)
	}

	return books, nil
}

// UpdateStatus is the admin decision on a Pending listing.
func (s *bookServiceImpl) UpdateStatus(ctx context.Context, bookID string, status model.BookStatus) (*model.Book, error) {
	if status != model.BookStatusApproved && status != model.BookStatusRejected {
		return nil, apperr.Validation("status must be one of: Approved Rejected")
	}

	if _, err := s.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	err := s.bookRepo.UpdateStatus(ctx, bookID, model.BookStatusPending, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("Only pending books can be reviewed")
		}
		return nil, fmt.Errorf("update book status: %w", err)
	}

	return s.GetBook(ctx, bookID)
}

func trimListing(req *dto.SellBookRequest) dto.SellBookRequest {
	if req == nil {
		return dto.SellBookRequest{}
	}

	return dto.SellBookRequest{
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		Condition:   strings.TrimSpace(req.Condition),
		Category:    strings.TrimSpace(req.Category),
		Price:       strings.TrimSpace(req.Price),
		ISBN:        strings.TrimSpace(req.ISBN),
		Description: strings.TrimSpace(req.Description),
	}
}
