package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	filestorage "ops-portal-backend/lib/file-storage"
	s3client "ops-portal-backend/s3"
)

func InitS3() {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	err = client.MakeBucket(context.Background())
	if err != nil {
		log.WithError(err).Error("Ошибка создания бакета S3")
		return
	}

	filestorage.NewInstance(client.Client())
	log.Info("S3 клиент успешно инициализирован")
}
