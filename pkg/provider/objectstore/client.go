package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// objectContentType is the fixed Content-Type this provider writes for
// every blob, per §4.4.1: this store addresses content purely by CID,
// never by MIME type, so every object is opaque bytes.
const objectContentType = "application/octet-stream"

// BlobEntry is one listed object: its name and declared size.
type BlobEntry struct {
	Name string
	Size uint64
}

// Client is the narrow surface this provider needs from a blob
// container, kept as an interface (mirroring the teacher's
// store/blobstore.Blobstore split) so the reindex and put/get logic can
// be exercised against a fake without a live Azure account.
type Client interface {
	List(ctx context.Context) ([]BlobEntry, error)
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	Put(ctx context.Context, name string, size int64, data io.Reader) error
}

// azureClient adapts an azblob container.Client to the Client interface.
type azureClient struct {
	account   string
	container string
	client    *container.Client
}

var _ Client = (*azureClient)(nil)

// Credentials selects how the container client authenticates, in the
// order §4.4.1 specifies: explicit service-principal credentials →
// access-key from environment → anonymous.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

func (c Credentials) hasServicePrincipal() bool {
	return c.TenantID != "" && c.ClientID != "" && c.ClientSecret != ""
}

// NewAzureClient builds a Client against the given storage account and
// container, resolving credentials in the order documented in §4.4.1.
func NewAzureClient(account, containerName string, creds Credentials) (Client, error) {
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/%s", account, containerName)

	var (
		cc  *container.Client
		err error
	)
	switch {
	case creds.hasServicePrincipal():
		var cred azcore.TokenCredential
		cred, err = azidentity.NewClientSecretCredential(creds.TenantID, creds.ClientID, creds.ClientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("building service-principal credential: %w", err)
		}
		cc, err = container.NewClient(serviceURL, cred, nil)
	case os.Getenv("AZURE_STORAGE_ACCESS_KEY") != "":
		var shared *azblob.SharedKeyCredential
		shared, err = azblob.NewSharedKeyCredential(account, os.Getenv("AZURE_STORAGE_ACCESS_KEY"))
		if err != nil {
			return nil, fmt.Errorf("building shared-key credential: %w", err)
		}
		cc, err = container.NewClientWithSharedKeyCredential(serviceURL, shared, nil)
	default:
		cc, err = container.NewClientWithNoCredential(serviceURL, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("building container client: %w", err)
	}

	return &azureClient{account: account, container: containerName, client: cc}, nil
}

func (c *azureClient) List(ctx context.Context) ([]BlobEntry, error) {
	var out []BlobEntry
	pager := c.client.NewListBlobsFlatPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing blobs: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			var size uint64
			if item.Properties != nil && item.Properties.ContentLength != nil {
				size = uint64(*item.Properties.ContentLength)
			}
			out = append(out, BlobEntry{Name: *item.Name, Size: size})
		}
	}
	return out, nil
}

func (c *azureClient) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	blobClient := c.client.NewBlobClient(name)
	resp, err := blobClient.DownloadStream(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("downloading blob %s: %w", name, err)
	}
	return resp.Body, nil
}

func (c *azureClient) Put(ctx context.Context, name string, size int64, data io.Reader) error {
	blockBlobClient := c.client.NewBlockBlobClient(name)
	_, err := blockBlobClient.UploadStream(ctx, data, &blockblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(objectContentType)},
	})
	if err != nil {
		return fmt.Errorf("uploading blob %s: %w", name, err)
	}
	return nil
}

// URLFor renders the canonical route URL for a blob under this
// container, per §4.4.1's "https://{account}.blob.core.windows.net/{container}/{name}".
func URLFor(account, containerName, name string) string {
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s", account, containerName, name)
}
