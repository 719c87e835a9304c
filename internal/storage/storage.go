package storage

import (
	"context"
	"errors"
	"io"
)

// MaxReceiptSize caps receipt uploads at 5 MB.
const MaxReceiptSize = 5 << 20

var (
	ErrReceiptTooLarge        = errors.New("receipt file exceeds 5MB limit")
	ErrUnsupportedReceiptType = errors.New("receipt must be an image or a PDF")
)

// extByMIME doubles as the allow-list for uploads.
var extByMIME = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
	"application/pdf": "pdf",
}

// Store persists payment receipts keyed by {user_id}/{order_id}.{ext}
// and returns a URL the order row can carry.
type Store interface {
	SaveReceipt(ctx context.Context, userID, orderID, contentType string, r io.Reader, size int64) (string, error)
}

// ValidateReceipt checks size and MIME type before any bytes are
// written, returning the file extension for the key.
func ValidateReceipt(contentType string, size int64) (string, error) {
	if size > MaxReceiptSize {
		return "", ErrReceiptTooLarge
	}
	ext, ok := extByMIME[contentType]
	if !ok {
		return "", ErrUnsupportedReceiptType
	}
	return ext, nil
}
