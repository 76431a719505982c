package config

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/cidgate/cidgate/pkg/provider"
	"github.com/cidgate/cidgate/pkg/provider/httpgateway"
	"github.com/cidgate/cidgate/pkg/provider/objectstore"
	"github.com/cidgate/cidgate/pkg/provider/peerblob"
	"github.com/cidgate/cidgate/pkg/routestore"
)

// ProviderConfig is one entry of §6's `providers: [...]` list. Exactly
// one of Iroh, Azure, or HTTP should be set, selected by Type, matching
// the teacher's tagged-variant config entries (e.g. RepoConfig.S3's
// presence-as-tag pattern generalized to a three-way union).
type ProviderConfig struct {
	Type  string               `mapstructure:"type" validate:"required,oneof=iroh azure http" toml:"type"`
	ID    string               `mapstructure:"id" validate:"required" toml:"id"`
	Iroh  *IrohProviderConfig  `mapstructure:"iroh" toml:"iroh,omitempty"`
	Azure *AzureProviderConfig `mapstructure:"azure" toml:"azure,omitempty"`
	HTTP  *HTTPProviderConfig  `mapstructure:"http" toml:"http,omitempty"`
}

func (p ProviderConfig) Validate() error {
	return validateConfig(p)
}

// IrohProviderConfig configures §4.4.2's peer-blob provider: `iroh{path,
// writeable}` for a local filesystem-backed store, or a `peer_addr` for
// a remote peer dialed over the blobs protocol.
type IrohProviderConfig struct {
	Path      string `mapstructure:"path" toml:"path,omitempty"`
	PeerAddr  string `mapstructure:"peer_addr" toml:"peer_addr,omitempty"`
	Writeable bool   `mapstructure:"writeable" toml:"writeable,omitempty"`
}

// AzureProviderConfig configures §4.4.1's object-store provider:
// `azure{account, container, credentials?, filter, writeable}`.
type AzureProviderConfig struct {
	Account      string            `mapstructure:"account" validate:"required" toml:"account"`
	Container    string            `mapstructure:"container" validate:"required" toml:"container"`
	TenantID     string            `mapstructure:"tenant_id" toml:"tenant_id,omitempty"`
	ClientID     string            `mapstructure:"client_id" toml:"client_id,omitempty"`
	ClientSecret string            `mapstructure:"client_secret" toml:"client_secret,omitempty"`
	Filter       BlobFilterConfig  `mapstructure:"filter" toml:"filter,omitempty"`
	Writeable    bool              `mapstructure:"writeable" toml:"writeable,omitempty"`
}

// HTTPProviderConfig configures §4.4.3's HTTP-gateway provider.
type HTTPProviderConfig struct {
	GatewayURL string `mapstructure:"gateway_url" validate:"required,url" toml:"gateway_url"`
}

// ToProvider constructs the live provider.Provider this config
// describes. store and signer are only consumed by the object-store
// variant, which persists stubs/routes and signs completed routes
// during reindex; the peer-blob and HTTP-gateway variants are
// self-contained.
func (p ProviderConfig) ToProvider(ctx context.Context, store *routestore.Store, signer ed25519.PrivateKey) (provider.Provider, error) {
	switch p.Type {
	case "iroh":
		if p.Iroh == nil {
			return nil, fmt.Errorf("config: provider %q: iroh section is required", p.ID)
		}
		return p.Iroh.toProvider(ctx, p.ID)
	case "azure":
		if p.Azure == nil {
			return nil, fmt.Errorf("config: provider %q: azure section is required", p.ID)
		}
		return p.Azure.toProvider(p.ID, store, signer)
	case "http":
		if p.HTTP == nil {
			return nil, fmt.Errorf("config: provider %q: http section is required", p.ID)
		}
		return httpgateway.New(p.ID, p.HTTP.GatewayURL)
	default:
		return nil, fmt.Errorf("config: provider %q: unknown type %q", p.ID, p.Type)
	}
}

func (i IrohProviderConfig) toProvider(ctx context.Context, id string) (provider.Provider, error) {
	switch {
	case i.Path != "":
		store, err := peerblob.NewLocalStore(i.Path)
		if err != nil {
			return nil, fmt.Errorf("config: provider %q: %w", id, err)
		}
		return peerblob.NewLocal(id, store), nil
	case i.PeerAddr != "":
		peer, err := peerblob.DialPeer(ctx, i.PeerAddr)
		if err != nil {
			return nil, fmt.Errorf("config: provider %q: %w", id, err)
		}
		return peerblob.NewRemote(id, peer), nil
	default:
		return nil, fmt.Errorf("config: provider %q: iroh requires either \"path\" or \"peer_addr\"", id)
	}
}

func (a AzureProviderConfig) toProvider(id string, store *routestore.Store, signer ed25519.PrivateKey) (provider.Provider, error) {
	creds := objectstore.Credentials{TenantID: a.TenantID, ClientID: a.ClientID, ClientSecret: a.ClientSecret}
	client, err := objectstore.NewAzureClient(a.Account, a.Container, creds)
	if err != nil {
		return nil, fmt.Errorf("config: provider %q: %w", id, err)
	}
	blobFilter, err := a.Filter.ToBlobFilter()
	if err != nil {
		return nil, fmt.Errorf("config: provider %q: %w", id, err)
	}
	return objectstore.New(objectstore.Config{
		ID:        id,
		Account:   a.Account,
		Container: a.Container,
		Client:    client,
		Filter:    blobFilter,
		Writeable: a.Writeable,
		Signer:    signer,
		Store:     store,
	})
}
