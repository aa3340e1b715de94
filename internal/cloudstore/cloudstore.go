package cloudstore

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// PaperFolder is where submitted manuscripts land in the object store.
const PaperFolder = "research_papers"

type UploadResult struct {
	URL    string
	Bytes  int64
	Format string
}

// Uploader pushes a binary stream to remote object storage and returns a
// durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*UploadResult, error)
}

type Client struct {
	cld *cloudinary.Cloudinary
}

func New(cloudName, apiKey, apiSecret string) (*Client, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}
	return &Client{cld: cld}, nil
}

// Upload lets the store infer the asset type; the call blocks until the
// store has accepted the whole stream.
func (c *Client) Upload(ctx context.Context, file io.Reader, folder string) (*UploadResult, error) {
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("upload rejected: %s", res.Error.Message)
	}

	return &UploadResult{
		URL:    res.SecureURL,
		Bytes:  int64(res.Bytes),
		Format: res.Format,
	}, nil
}
