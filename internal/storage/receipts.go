package storage

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxReceiptSize int64 = 5 * 1024 * 1024
	thumbnailSize        = 320
)

var receiptExtensions = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// ReceiptContentType sniffs data and reports whether it is an accepted receipt type
func ReceiptContentType(data []byte) (string, bool) {
	contentType := http.DetectContentType(data)
	_, ok := receiptExtensions[contentType]
	return contentType, ok
}

func IsImage(contentType string) bool {
	return contentType == "image/jpeg" || contentType == "image/png"
}

// ReceiptKey builds a unique object key: receipts/<user>/<expense>/<uuid><ext>
func ReceiptKey(userID int64, expenseID, contentType string) string {
	return path.Join("receipts", strconv.FormatInt(userID, 10), expenseID, uuid.New().String()+receiptExtensions[contentType])
}

// ThumbnailKey derives the thumbnail object key from a receipt key
func ThumbnailKey(receiptKey string) string {
	ext := path.Ext(receiptKey)
	return receiptKey[:len(receiptKey)-len(ext)] + "_thumb.jpg"
}

// Thumbnail scales an image down to fit a 320x320 box and encodes it as JPEG
func Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
