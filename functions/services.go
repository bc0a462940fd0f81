package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/CorrelAid/function_relay/models"
)

// Remote function names, appended to the functions base URL.
const (
	UploadBlobFunction          = "UploadBlob"
	StoreTableInfoFunction      = "StoreTableInfo"
	ProcessQueueMessageFunction = "ProcessQueueMessage"
	UploadFileFunction          = "UploadFile"
)

type BlobService interface {
	UploadBlob(ctx context.Context, container, name string, file models.UploadedFile) error
}

type TableService interface {
	StoreProfile(ctx context.Context, profile models.CustomerProfile) error
}

type QueueService interface {
	SendOrder(ctx context.Context, order models.OrderReference) error
}

type FileService interface {
	UploadFile(ctx context.Context, share, name string, file models.UploadedFile) error
}

var (
	_ BlobService  = (*BlobFunction)(nil)
	_ TableService = (*TableFunction)(nil)
	_ QueueService = (*QueueFunction)(nil)
	_ FileService  = (*FileFunction)(nil)
)

// BlobFunction streams uploads to the blob upload function.
type BlobFunction struct {
	fn *function
}

func NewBlobFunction(client Doer, rawURL, code string) (*BlobFunction, error) {
	fn, err := newFunction(client, UploadBlobFunction, rawURL, code)
	if err != nil {
		return nil, err
	}
	return &BlobFunction{fn: fn}, nil
}

func (b *BlobFunction) UploadBlob(ctx context.Context, container, name string, file models.UploadedFile) error {
	params := url.Values{}
	params.Set("containerName", container)
	params.Set("blobName", name)
	return b.fn.post(ctx, params, contentType(file.ContentType), file.Body, file.Size)
}

// TableFunction posts customer profiles to the table storage function.
type TableFunction struct {
	fn *function
}

func NewTableFunction(client Doer, rawURL, code string) (*TableFunction, error) {
	fn, err := newFunction(client, StoreTableInfoFunction, rawURL, code)
	if err != nil {
		return nil, err
	}
	return &TableFunction{fn: fn}, nil
}

func (t *TableFunction) StoreProfile(ctx context.Context, profile models.CustomerProfile) error {
	body, err := encodeJSON(profile)
	if err != nil {
		return fmt.Errorf("function %s: encode profile: %w", t.fn.name, err)
	}
	return t.fn.post(ctx, nil, "application/json; charset=utf-8", bytes.NewReader(body), int64(len(body)))
}

// QueueFunction posts order references to the queue processing function.
type QueueFunction struct {
	fn *function
}

func NewQueueFunction(client Doer, rawURL, code string) (*QueueFunction, error) {
	fn, err := newFunction(client, ProcessQueueMessageFunction, rawURL, code)
	if err != nil {
		return nil, err
	}
	return &QueueFunction{fn: fn}, nil
}

func (q *QueueFunction) SendOrder(ctx context.Context, order models.OrderReference) error {
	body, err := encodeJSON(order)
	if err != nil {
		return fmt.Errorf("function %s: encode order: %w", q.fn.name, err)
	}
	return q.fn.post(ctx, nil, "application/json; charset=utf-8", bytes.NewReader(body), int64(len(body)))
}

// FileFunction streams uploads to the file share upload function.
type FileFunction struct {
	fn *function
}

func NewFileFunction(client Doer, rawURL, code string) (*FileFunction, error) {
	fn, err := newFunction(client, UploadFileFunction, rawURL, code)
	if err != nil {
		return nil, err
	}
	return &FileFunction{fn: fn}, nil
}

func (f *FileFunction) UploadFile(ctx context.Context, share, name string, file models.UploadedFile) error {
	params := url.Values{}
	params.Set("shareName", share)
	params.Set("fileName", name)
	return f.fn.post(ctx, params, contentType(file.ContentType), file.Body, file.Size)
}

// encodeJSON marshals v without HTML escaping and without the encoder's
// trailing newline.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
