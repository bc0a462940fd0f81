package inits

import (
	"github.com/CorrelAid/function_relay/functions"
	"github.com/CorrelAid/function_relay/logger"
)

type Services struct {
	Blobs  functions.BlobService
	Tables functions.TableService
	Queue  functions.QueueService
	Files  functions.FileService
}

// ServicesInit builds the remote function clients on a shared HTTP client.
// Image uploads go straight to blob storage when a connection string is set.
func ServicesInit(cfg *Config, client functions.Doer) (*Services, error) {
	var (
		s   Services
		err error
	)

	if cfg.StorageConnection != "" {
		if s.Blobs, err = functions.NewStorageBlobService(cfg.StorageConnection); err != nil {
			return nil, err
		}
		logger.Info("image uploads use blob storage directly")
	} else if s.Blobs, err = functions.NewBlobFunction(client, cfg.UploadBlob.URL, cfg.UploadBlob.Code); err != nil {
		return nil, err
	}
	if s.Tables, err = functions.NewTableFunction(client, cfg.StoreTableInfo.URL, cfg.StoreTableInfo.Code); err != nil {
		return nil, err
	}
	if s.Queue, err = functions.NewQueueFunction(client, cfg.ProcessQueueMessage.URL, cfg.ProcessQueueMessage.Code); err != nil {
		return nil, err
	}
	if s.Files, err = functions.NewFileFunction(client, cfg.UploadFile.URL, cfg.UploadFile.Code); err != nil {
		return nil, err
	}
	return &s, nil
}
