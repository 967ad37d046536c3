package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	sc "github.com/dmitrijs2005/movieapi/internal/server/config"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

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

// PosterUpload tells a client where to PUT a poster image.
type PosterUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// MovieService manages the catalog and poster storage.
type MovieService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewMovieService(m repomanager.RepositoryManager, config *sc.Config) *MovieService {
	return &MovieService{repomanager: m, config: config}
}

// GetRandomStorageKey returns a fresh object key for a poster.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("posters/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *MovieService) List(ctx context.Context) ([]*models.Movie, error) {
	return s.repomanager.Movies().List(ctx)
}

func (s *MovieService) Get(ctx context.Context, id string) (*models.Movie, error) {
	return s.repomanager.Movies().Get(ctx, id)
}

func (s *MovieService) Create(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	created, err := s.repomanager.Movies().Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("error creating movie: %w", storeError(err))
	}
	return created, nil
}

func (s *MovieService) Update(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	updated, err := s.repomanager.Movies().Update(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("error updating movie: %w", storeError(err))
	}
	return updated, nil
}

// Delete removes the movie and drops it from every user's favorites.
func (s *MovieService) Delete(ctx context.Context, id string) error {
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if err := repos.Users().RemoveMovieFromFavorites(ctx, id); err != nil {
			return err
		}
		return repos.Movies().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("error deleting movie: %w", storeError(err))
	}
	return nil
}

func (s *MovieService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PosterURL returns a presigned GET URL for the movie's poster.
func (s *MovieService) PosterURL(ctx context.Context, id string) (string, error) {
	movie, err := s.repomanager.Movies().Get(ctx, id)
	if err != nil {
		return "", err
	}
	if movie.ImagePath == "" {
		return "", fmt.Errorf("%w: movie has no poster", common.ErrorNotFound)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &movie.ImagePath,
	}, s3.WithPresignExpires(s.config.PosterURLTTL))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}

// PosterUploadURL assigns the movie a new poster key and returns a presigned
// PUT URL for it.
func (s *MovieService) PosterUploadURL(ctx context.Context, id string) (*PosterUpload, error) {
	movie, err := s.repomanager.Movies().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.PosterURLTTL))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	movie.ImagePath = key
	if _, err := s.repomanager.Movies().Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("error updating movie: %w", storeError(err))
	}
	return &PosterUpload{Key: key, URL: req.URL}, nil
}
