package restoration

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"chroma/internal/shared/config"
	"chroma/internal/shared/logger"
)

const (
	// cloudinaryProviderName identifies this provider in logs and usage events.
	cloudinaryProviderName = "cloudinary"
	// restoreTransformation is applied to the uploaded image on delivery.
	restoreTransformation = "e_gen_restore"
	// cloudinaryModelID is recorded as the serving model in usage events.
	cloudinaryModelID = "cloudinary-gen-restore"
)

// CloudinaryProvider restores images through Cloudinary's generative
// transformations. It is the fallback when the primary model endpoint is
// down: slower and coarser, but independent infrastructure.
type CloudinaryProvider struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger logger.Interface
}

// NewCloudinaryProvider creates a provider backed by a Cloudinary account.
func NewCloudinaryProvider(cfg *config.CloudinaryConfig, logger logger.Interface) (*CloudinaryProvider, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryProvider{
		cld:    cld,
		folder: cfg.Folder,
		logger: logger,
	}, nil
}

// Ensure CloudinaryProvider implements Provider
var _ Provider = (*CloudinaryProvider)(nil)

// Name identifies the provider in logs and usage events.
func (p *CloudinaryProvider) Name() string {
	return cloudinaryProviderName
}

// Restore uploads the image and returns a delivery URL with the restore
// transformation applied. Cloudinary renders the transformation on first
// fetch, so the URL is ready as soon as the upload finishes.
func (p *CloudinaryProvider) Restore(ctx context.Context, image []byte, contentType string) (*Result, error) {
	start := time.Now()

	uploadResult, err := p.cld.Upload.Upload(ctx, bytes.NewReader(image), uploader.UploadParams{
		Folder:       p.folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	img, err := p.cld.Image(uploadResult.PublicID)
	if err != nil {
		return nil, fmt.Errorf("failed to build Cloudinary asset: %w", err)
	}
	img.Transformation = restoreTransformation

	resultURL, err := img.String()
	if err != nil {
		return nil, fmt.Errorf("failed to build Cloudinary URL: %w", err)
	}

	elapsed := uint64(time.Since(start).Milliseconds())
	p.logger.Infow("image restored",
		"provider", cloudinaryProviderName,
		"public_id", uploadResult.PublicID,
		"elapsed_ms", elapsed,
	)

	return &Result{
		ResultURL: resultURL,
		ModelID:   cloudinaryModelID,
		ElapsedMs: elapsed,
	}, nil
}
