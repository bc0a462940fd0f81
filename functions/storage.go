package functions

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"

	"github.com/CorrelAid/function_relay/models"
)

var _ BlobService = (*StorageBlobService)(nil)

// StorageBlobService writes image uploads straight to Azure Blob Storage,
// bypassing the upload function.
type StorageBlobService struct {
	client *azblob.Client
}

func NewStorageBlobService(connectionString string) (*StorageBlobService, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("blob storage client: %w", err)
	}
	return &StorageBlobService{client: client}, nil
}

func (s *StorageBlobService) UploadBlob(ctx context.Context, container, name string, file models.UploadedFile) error {
	ct := contentType(file.ContentType)
	_, err := s.client.UploadStream(ctx, container, name, file.Body, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &ct},
	})
	if err != nil {
		return fmt.Errorf("upload blob %s/%s: %w", container, name, err)
	}
	return nil
}
