package mongo

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/Tribeoftech/atlas-files-manager/internal/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// NewClient creates and returns a new MongoDB client based on the provided
// configuration. It handles standard connections and connections to AWS
// DocumentDB using an SSL certificate bundle.
func NewClient(ctx context.Context, cfg config.Mongo) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URL)

	// If a path to a DocumentDB certificate bundle is provided, configure TLS.
	if cfg.DocumentDBBundlePath != "" {
		tlsConfig, err := createTLSConfig(cfg.DocumentDBBundlePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config for DocumentDB: %w", err)
		}
		clientOptions.SetTLSConfig(tlsConfig)
	}

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping so the application never starts with a dead connection.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// createTLSConfig sets up a TLS configuration trusting a custom CA file,
// as required when connecting to AWS DocumentDB.
func createTLSConfig(caFilePath string) (*tls.Config, error) {
	if _, err := os.Stat(caFilePath); os.IsNotExist(err) {
		return nil, errors.New("DocumentDB CA file not found at path: " + caFilePath)
	}

	certs := x509.NewCertPool()

	pem, err := os.ReadFile(caFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}
	certs.AppendCertsFromPEM(pem)

	return &tls.Config{
		RootCAs: certs,
	}, nil
}
