package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/storage"
)

// UploadReceipt stores data as the expense's receipt, replacing any previous one.
// Image receipts get a thumbnail next to the original.
func (s *Service) UploadReceipt(ctx context.Context, expenseID primitive.ObjectID, data []byte) (*models.Receipt, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if s.files == nil {
		return nil, ErrUnavailable
	}
	expense, err := s.loadExpense(ctx, userID, expenseID, models.PermEditExpenses)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, invalid("file is required")
	}
	if int64(len(data)) > storage.MaxReceiptSize {
		return nil, invalid(fmt.Sprintf("file must be at most %d bytes", storage.MaxReceiptSize))
	}
	contentType, ok := storage.ReceiptContentType(data)
	if !ok {
		return nil, invalid("file must be a PDF, JPEG or PNG")
	}

	key := storage.ReceiptKey(expense.UserID, expenseID.Hex(), contentType)
	url, err := s.files.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}
	receipt := &models.Receipt{
		ObjectKey:   key,
		URL:         url,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedAt:  s.now(),
	}

	if storage.IsImage(contentType) {
		if thumb, err := storage.Thumbnail(data); err != nil {
			s.log.Warnf("thumbnail for %s skipped: %v", key, err)
		} else {
			thumbKey := storage.ThumbnailKey(key)
			if thumbURL, err := s.files.Upload(ctx, thumbKey, "image/jpeg", thumb); err != nil {
				s.log.Warnf("thumbnail upload for %s failed: %v", key, err)
			} else {
				receipt.ThumbnailKey = thumbKey
				receipt.ThumbnailURL = thumbURL
			}
		}
	}

	if err := s.store.Expenses.Update(ctx, expenseID, bson.M{
		"$set": bson.M{"receipt": receipt, "updated_at": receipt.UploadedAt},
	}); err != nil {
		s.removeReceiptObjects(ctx, receipt)
		return nil, fmt.Errorf("failed to attach receipt: %w", err)
	}
	if expense.Receipt != nil {
		s.removeReceiptObjects(ctx, expense.Receipt)
	}

	s.log.Infof("Receipt %s attached to expense %s", key, expenseID.Hex())
	return receipt, nil
}

func (s *Service) DeleteReceipt(ctx context.Context, expenseID primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if s.files == nil {
		return ErrUnavailable
	}
	expense, err := s.loadExpense(ctx, userID, expenseID, models.PermEditExpenses)
	if err != nil {
		return err
	}
	if expense.Receipt == nil {
		return ErrNotFound
	}

	if err := s.store.Expenses.Update(ctx, expenseID, bson.M{
		"$unset": bson.M{"receipt": ""},
		"$set":   bson.M{"updated_at": s.now()},
	}); err != nil {
		return fmt.Errorf("failed to detach receipt: %w", err)
	}
	s.removeReceiptObjects(ctx, expense.Receipt)
	return nil
}

func (s *Service) removeReceiptObjects(ctx context.Context, r *models.Receipt) {
	if s.files == nil {
		return
	}
	for _, key := range []string{r.ObjectKey, r.ThumbnailKey} {
		if key == "" {
			continue
		}
		if err := s.files.Delete(ctx, key); err != nil {
			s.log.Warnf("could not remove receipt object %s: %v", key, err)
		}
	}
}
