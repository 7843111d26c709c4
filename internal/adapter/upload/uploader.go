// Package upload talks to the external binary-storage service. The workflow
// treats a failure here as fatal for the operation that needed the file.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type HTTPUploader struct {
	client   *resty.Client
	endpoint string
}

func NewHTTPUploader(endpoint, apiKey string) *HTTPUploader {
	c := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("Authorization", "Bearer "+apiKey)
	return &HTTPUploader{client: c, endpoint: endpoint}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

func (u *HTTPUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var out uploadResponse
	resp, err := u.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetResult(&out).
		Post(u.endpoint)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("upload service returned %s", resp.Status())
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("upload service returned no url")
	}
	return out.SecureURL, nil
}
