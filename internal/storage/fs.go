package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"glamour-be/internal/logger"

	"go.uber.org/zap"
)

// FSStore writes receipts to the local filesystem. The interface seam
// is where a bucket-backed implementation would slot in.
type FSStore struct {
	root string
}

func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) SaveReceipt(ctx context.Context, userID, orderID, contentType string, r io.Reader, size int64) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("user_id", userID),
		zap.String("order_id", orderID),
		zap.String("content_type", contentType),
		zap.Int64("size", size),
	)

	ext, err := ValidateReceipt(contentType, size)
	if err != nil {
		log.Warn("receipt rejected", zap.Error(err))
		return "", err
	}

	dir := filepath.Join(s.root, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create receipt directory: %w", err)
	}

	name := fmt.Sprintf("%s.%s", orderID, ext)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create receipt file: %w", err)
	}
	defer f.Close()

	// Guard against a body longer than the declared size.
	written, err := io.Copy(f, io.LimitReader(r, MaxReceiptSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	if written > MaxReceiptSize {
		os.Remove(path)
		return "", ErrReceiptTooLarge
	}

	url := fmt.Sprintf("/receipts/%s/%s", userID, name)
	log.Info("receipt stored", zap.String("url", url))
	return url, nil
}
