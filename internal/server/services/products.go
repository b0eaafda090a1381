package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mkropacheva/storefront/internal/dbx"
	sc "github.com/mkropacheva/storefront/internal/server/config"
	"github.com/mkropacheva/storefront/internal/server/models"
	"github.com/mkropacheva/storefront/internal/server/repositories/repomanager"
)

const presignExpiry = 15 * time.Minute

// Seams for testing the AWS SDK wiring without network access.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ProductService implements catalog CRUD and hands out presigned URLs for
// product images stored in an S3-compatible backend.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *ProductService {
	return &ProductService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

// ProductParams mirror the writable product fields.
type ProductParams struct {
	Name        string
	Price       string
	Brand       string
	Description string
	Quantity    string
}

func (s *ProductService) Create(ctx context.Context, params ProductParams) (*models.Product, error) {
	product := &models.Product{
		Name:        params.Name,
		Price:       params.Price,
		Brand:       params.Brand,
		Description: params.Description,
		Quantity:    params.Quantity,
	}
	return s.repomanager.Products(s.db).Create(ctx, product)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repomanager.Products(s.db).GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.repomanager.Products(s.db).List(ctx)
}

// Update rewrites the writable fields in one transaction, so a concurrent
// image-key assignment is not lost between the read and the write.
func (s *ProductService) Update(ctx context.Context, id string, params ProductParams) (*models.Product, error) {
	var updated *models.Product
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Products(tx)

		product, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		product.Name = params.Name
		product.Price = params.Price
		product.Brand = params.Brand
		product.Description = params.Description
		product.Quantity = params.Quantity

		updated, err = repo.Update(ctx, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Products(s.db).Delete(ctx, id)
}

func randomImageKey() string {
	d := time.Now()
	return fmt.Sprintf("products/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ProductService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// CreateImageUploadURL returns a presigned PUT URL for the product's image.
// A product that already has a storage key keeps it, so a re-requested
// upload replaces the existing object instead of orphaning it; only the
// first request allocates a key and records it, inside one transaction.
func (s *ProductService) CreateImageUploadURL(ctx context.Context, productID string) (string, error) {
	var key string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Products(tx)

		product, err := repo.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		key = product.ImageKey
		if key != "" {
			return nil
		}

		key = randomImageKey()
		product.ImageKey = key
		_, err = repo.Update(ctx, product)
		return err
	})
	if err != nil {
		return "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// ImageURL returns a presigned GET URL for the given storage key.
func (s *ProductService) ImageURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
