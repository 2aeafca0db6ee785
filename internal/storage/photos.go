package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

const (
	maxPhotoWidth = 1280
	webpQuality   = 80
)

// PhotoStore recebe a foto original (jpeg/png), redimensiona, converte
// para webp e sobe para o S3. Retorna a URL pública.
type PhotoStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewPhotoStore(region, accessKey, secretKey, bucket, baseURL string) *PhotoStore {
	client := s3.New(s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	})

	return &PhotoStore{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (s *PhotoStore) UploadVehiclePhoto(
	ctx context.Context,
	tenantID uint,
	vehicleID uint,
	original io.Reader,
) (string, error) {

	img, _, err := image.Decode(original)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	img = shrink(img, maxPhotoWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	objKey := fmt.Sprintf("tenants/%d/vehicles/%d.webp", tenantID, vehicleID)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, objKey), nil
}

func shrink(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth {
		return img
	}

	ratio := float64(maxWidth) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
