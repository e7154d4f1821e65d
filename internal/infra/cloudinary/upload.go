package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"

	sdk "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrNotConfigured = errors.New("media uploads are not configured")

// Uploader sends images to the media host and returns a durable URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Client performs unsigned uploads with an upload preset. No secret is held
// server side; anyone who knows the preset can upload.
type Client struct {
	UploadPreset string
	Folder       string

	cld *sdk.Cloudinary
}

func NewClient(cloudName, uploadPreset, folder string) (*Client, error) {
	if cloudName == "" || uploadPreset == "" {
		return nil, ErrNotConfigured
	}
	cld, err := sdk.NewFromParams(cloudName, "", "")
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	return &Client{UploadPreset: uploadPreset, Folder: folder, cld: cld}, nil
}

// SetUploadPrefix points uploads at another API host.
func (c *Client) SetUploadPrefix(prefix string) {
	c.cld.Config.API.UploadPrefix = prefix
	c.cld.Upload.Config.API.UploadPrefix = prefix
}

func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if c == nil || c.cld == nil {
		return "", ErrNotConfigured
	}

	res, err := c.cld.Upload.UnsignedUpload(ctx, content, c.UploadPreset, uploader.UploadParams{
		Folder:           c.Folder,
		FilenameOverride: filename,
	})
	if err != nil {
		return "", fmt.Errorf("media upload %s: %w", filename, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("media upload failed: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("media upload: response has no secure_url")
	}
	return res.SecureURL, nil
}
