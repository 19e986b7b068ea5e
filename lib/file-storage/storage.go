package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"ops-portal-backend/config"
)

type Provider interface {
	UploadPhoto(ctx context.Context, ownerID string, fileReader io.Reader, fileSize int64, contentType string) (key string, err error)
	GetPhoto(ctx context.Context, key string) (data []byte, contentType string, err error)
	DeletePhoto(ctx context.Context, key string) error
}

var Instance Provider

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

type impl struct {
	s3client *minio.Client
}

// UploadPhoto ключ объекта формируется заново при каждой загрузке,
// старое фото остается до явного удаления
func (i impl) UploadPhoto(ctx context.Context, ownerID string, fileReader io.Reader, fileSize int64, contentType string) (key string, err error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key = fmt.Sprintf("photos/%s/%s", ownerID, uuid.NewString())
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, key, fileReader, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (i impl) GetPhoto(ctx context.Context, key string) (data []byte, contentType string, err error) {
	obj, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	defer obj.Close()
	stat, err := obj.Stat()
	if err != nil {
		return nil, "", err
	}
	buf := bytes.Buffer{}
	_, err = io.Copy(&buf, obj)
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), stat.ContentType, nil
}

func (i impl) DeletePhoto(ctx context.Context, key string) error {
	return i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, key, minio.RemoveObjectOptions{})
}
