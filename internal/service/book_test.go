package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pageturn/internal/apperr"
	"pageturn/internal/dto"
	"pageturn/internal/model"
	"pageturn/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newArtifact(t *testing.T) *model.UploadArtifact {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cover.jpg")
	require.NoError(t, os.WriteFile(p, []byte("jpeg"), 0o600))
	return &model.UploadArtifact{Path: p, Filename: "cover.jpg", ContentType: "image/jpeg", Size: 4}
}

func duneRequest() *dto.SellBookRequest {
	return &dto.SellBookRequest{
		Title:     "Dune",
		Author:    "Herbert",
		Condition: "Good",
		Category:  "Fiction",
		Price:     "300",
	}
}

func newBookService(t *testing.T) (BookService, *mockMediaStore, repository.BookRepository, *gorm.DB) {
	db := newTestDB(t)
	media := &mockMediaStore{}
	repo := repository.NewBookRepository(db)
	return NewBookService(zap.NewNop(), media, repo), media, repo, db
}

func countBooks(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&model.Book{}).Count(&n).Error)
	return n
}

func TestCreateListingSuccess(t *testing.T) {
	svc, media, _, db := newBookService(t)
	artifact := newArtifact(t)
	media.On("Upload", mock.Anything, artifact).Return("https://media.example.com/dune.jpg", nil).Once()

	book, err := svc.CreateListing(context.Background(), "seller-1", duneRequest(), artifact)
	require.NoError(t, err)

	assert.Equal(t, model.BookStatusPending, book.Status)
	assert.Equal(t, "seller-1", book.SellerID)
	assert.Equal(t, []string{"https://media.example.com/dune.jpg"}, book.Images)
	assert.Equal(t, "300", book.Price.String())
	assert.EqualValues(t, 1, countBooks(t, db))

	_, statErr := os.Stat(artifact.Path)
	assert.True(t, os.IsNotExist(statErr), "artifact should be removed")
	media.AssertExpectations(t)
}

func TestCreateListingMissingFields(t *testing.T) {
	required := []string{"title", "author", "condition", "category", "price"}

	// every non-empty subset of required fields
	for mask := 1; mask < 1<<len(required); mask++ {
		req := duneRequest()
		var missing []string
		for i, field := range required {
			if mask&(1<<i) == 0 {
				continue
			}
			missing = append(missing, field)
			switch field {
			case "title":
				req.Title = ""
			case "author":
				req.Author = ""
			case "condition":
				req.Condition = ""
			case "category":
				req.Category = ""
			case "price":
				req.Price = "  "
			}
		}

		svc, media, _, db := newBookService(t)
		artifact := newArtifact(t)

		_, err := svc.CreateListing(context.Background(), "seller-1", req, artifact)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

		msg := apperr.PublicMessage(err)
		assert.Equal(t, "Missing required fields: "+strings.Join(missing, ", "), msg)
		assert.EqualValues(t, 0, countBooks(t, db))
		media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)

		_, statErr := os.Stat(artifact.Path)
		assert.True(t, os.IsNotExist(statErr))
	}
}

func TestCreateListingRequiresSeller(t *testing.T) {
	svc, media, _, _ := newBookService(t)

	_, err := svc.CreateListing(context.Background(), "", duneRequest(), newArtifact(t))
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestCreateListingRequiresImage(t *testing.T) {
	svc, _, _, db := newBookService(t)

	_, err := svc.CreateListing(context.Background(), "seller-1", duneRequest(), nil)
	assert.Equal(t, apperr.KindInput, apperr.KindOf(err))
	assert.Equal(t, "At least one image is required", apperr.PublicMessage(err))
	assert.EqualValues(t, 0, countBooks(t, db))
}

func TestCreateListingRejectsBadPrice(t *testing.T) {
	svc, _, _, _ := newBookService(t)

	for _, price := range []string{"abc", "0", "-5"} {
		req := duneRequest()
		req.Price = price
		_, err := svc.CreateListing(context.Background(), "seller-1", req, newArtifact(t))
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), price)
	}
}

func TestCreateListingUploadFailure(t *testing.T) {
	svc, media, _, db := newBookService(t)
	artifact := newArtifact(t)
	media.On("Upload", mock.Anything, artifact).Return("", errors.New("cloudinary down")).Once()

	_, err := svc.CreateListing(context.Background(), "seller-1", duneRequest(), artifact)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.Equal(t, apperr.GenericMessage, apperr.PublicMessage(err))
	assert.EqualValues(t, 0, countBooks(t, db))

	_, statErr := os.Stat(artifact.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGetBookNotFound(t *testing.T) {
	svc, _, _, _ := newBookService(t)

	_, err := svc.GetBook(context.Background(), "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateStatusAndListApproved(t *testing.T) {
	ctx := context.Background()
	svc, media, _, _ := newBookService(t)
	media.On("Upload", mock.Anything, mock.Anything).Return("https://media.example.com/x.jpg", nil)

	book, err := svc.CreateListing(ctx, "seller-1", duneRequest(), newArtifact(t))
	require.NoError(t, err)

	books, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	_, err = svc.UpdateStatus(ctx, book.ID, model.BookStatusSold)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	updated, err := svc.UpdateStatus(ctx, book.ID, model.BookStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.BookStatusApproved, updated.Status)

	_, err = svc.UpdateStatus(ctx, book.ID, model.BookStatusRejected)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.UpdateStatus(ctx, "missing", model.BookStatusApproved)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	books, err = svc.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, book.ID, books[0].ID)
}
