package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"facilops-data/internal/store"
)

// OCRResponse is the recognition service reply.
type OCRResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// OCRClient calls the external text-recognition service. One attempt per
// request: failures are surfaced to the user, who retries manually.
// Results are cached in the KV keyed by image content hash, since the same
// badge photo tends to be re-submitted after a failed review.
type OCRClient struct {
	httpClient *resty.Client
	kv         store.KV
	logger     *zap.Logger
}

func NewOCRClient(baseURL, apiKey string, kv store.KV, logger *zap.Logger) *OCRClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60*time.Second) // recognition of large photos is slow
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}
	return &OCRClient{httpClient: client, kv: kv, logger: logger}
}

func ocrCacheKey(image []byte) string {
	sum := sha256.Sum256(image)
	return "ocr:" + hex.EncodeToString(sum[:])
}

// Recognize returns the plain text extracted from an image blob.
func (c *OCRClient) Recognize(ctx context.Context, image []byte) (string, error) {
	key := ocrCacheKey(image)
	if c.kv != nil {
		if cached, err := c.kv.Get(ctx, key); err == nil {
			return cached, nil
		}
	}

	var result OCRResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFileReader("image", "upload.jpg", bytes.NewReader(image)).
		SetResult(&result).
		Post("/v1/recognize")
	if err != nil {
		return "", fmt.Errorf("ocr request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ocr service returned %s", resp.Status())
	}
	if result.Error != "" {
		return "", fmt.Errorf("ocr service: %s", result.Error)
	}

	if c.kv != nil {
		if err := c.kv.Set(ctx, key, result.Text, 24*time.Hour); err != nil {
			c.logger.Warn("failed to cache ocr result", zap.Error(err))
		}
	}
	return result.Text, nil
}
