package repository

import (
	"context"
	"pageturn/internal/model"
	"time"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, bookID string) (*model.Book, error)
	FindByStatus(ctx context.Context, status model.BookStatus) ([]*model.Book, error)
	UpdateStatus(ctx context.Context, bookID string, from, to model.BookStatus) error
	MarkSold(ctx context.Context, tx *gorm.DB, bookID string) error
}

type bookRepoImpl struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepoImpl{
		db: db,
	}
}

func (r *bookRepoImpl) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepoImpl) FindByID(ctx context.Context, bookID string) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).
		Where("id = ?", bookID).
		First(&book).Error

	if err != nil {
		return nil, err
	}

	return &book, nil
}

func (r *bookRepoImpl) FindByStatus(ctx context.Context, status model.BookStatus) ([]*model.Book, error) {
	var books []*model.Book
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&books).
		Error

	if err != nil {
		return nil, err
	}

	return books, nil
}

// UpdateStatus moves a book from one status to another and reports
// gorm.ErrRecordNotFound when the book is not in the expected status.
func (r *bookRepoImpl) UpdateStatus(ctx context.Context, bookID string, from, to model.BookStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ? AND status = ?", bookID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *bookRepoImpl) MarkSold(ctx context.Context, tx *gorm.DB, bookID string) error {
	result := tx.WithContext(ctx).Model(&model.Book{}).
		Where("id = ? AND status = ?", bookID, model.BookStatusApproved).
		Updates(map[string]interface{}{
			"status":     model.BookStatusSold,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
