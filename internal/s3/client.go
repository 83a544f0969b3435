// Package s3 предоставляет функционал для публикации звуков в S3-хранилище
package s3

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Префикс ключей опубликованных звуков в бакете
const keyPrefix = "calls"

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

// Client загружает и удаляет опубликованные звуки
type Client struct {
	uploader *s3manager.Uploader
	s3Client *awss3.S3
	config   *Config
}

// NewClient создает новый S3 клиент
func NewClient(config *Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return &Client{
		uploader: s3manager.NewUploader(sess),
		s3Client: awss3.New(sess),
		config:   config,
	}, nil
}

// UploadSound загружает аудиофайл звука в бакет и возвращает его URL
func (c *Client) UploadSound(ctx context.Context, reader io.Reader, fileName string) (string, error) {
	key := path.Join(keyPrefix, fileName)

	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(c.config.BucketName),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String("audio/mpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}

	// Формируем URL файла
	url := fmt.Sprintf("%s/%s/%s", c.config.Endpoint, c.config.BucketName, key)
	return url, nil
}

// DeleteSound удаляет опубликованный звук из бакета
func (c *Client) DeleteSound(ctx context.Context, key string) error {
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}
	return nil
}
