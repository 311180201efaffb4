package upload

import (
	"context"

	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/transport"
)

const uploadPath = "/upload"

type fileResponse struct {
	FileURL string `json:"fileUrl"`
}

// HTTPUploader posts the file as a multipart form to the upload endpoint.
type HTTPUploader struct {
	client *transport.Client
	field  string
}

func NewHTTPUploader(client *transport.Client, field string) *HTTPUploader {
	if field == "" {
		field = "image"
	}
	return &HTTPUploader{client: client, field: field}
}

func (u *HTTPUploader) Upload(ctx context.Context, file File) (string, error) {
	var resp fileResponse
	op := transport.Op{Name: "upload", Entity: apperr.EntityImage}
	if err := u.client.PostMultipart(ctx, op, uploadPath, u.field, file, &resp); err != nil {
		return "", apperr.Upload(err)
	}
	if resp.FileURL == "" {
		return "", apperr.Upload(ErrEmptyResponse)
	}
	return resp.FileURL, nil
}
