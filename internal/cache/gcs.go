package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// CloudStorage implements the profile cache on a Cloud Storage bucket, for
// deployments (Cloud Functions) where process memory does not survive
// between requests. Entries are JSON objects under a common prefix.
type CloudStorage struct {
	client   *storage.Client
	bucket   string
	prefix   string
	duration time.Duration
}

// NewCloudStorage creates a Cloud Storage backed cache.
func NewCloudStorage(ctx context.Context, bucket string, duration time.Duration) (*CloudStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &CloudStorage{
		client:   client,
		bucket:   bucket,
		prefix:   "profiles/",
		duration: duration,
	}, nil
}

func (c *CloudStorage) objectName(key string) string {
	return c.prefix + key + ".json"
}

// Get retrieves an entry, treating missing or expired objects as misses.
func (c *CloudStorage) Get(ctx context.Context, key string) (*Entry, error) {
	obj := c.client.Bucket(c.bucket).Object(c.objectName(key))

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("opening object reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading object data: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshaling cache entry: %w", err)
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = c.Delete(ctx, key)
		return nil, ErrCacheMiss
	}
	return &entry, nil
}

// Set stores an entry and stamps its lifetime.
func (c *CloudStorage) Set(ctx context.Context, key string, entry *Entry) error {
	entry.Key = key
	entry.CreatedAt = time.Now()
	entry.ExpiresAt = time.Now().Add(c.duration)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	writer := c.client.Bucket(c.bucket).Object(c.objectName(key)).NewWriter(ctx)
	writer.ContentType = "application/json"
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("writing cache object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing cache object writer: %w", err)
	}
	return nil
}

// Delete removes an entry. A missing object is not an error.
func (c *CloudStorage) Delete(ctx context.Context, key string) error {
	err := c.client.Bucket(c.bucket).Object(c.objectName(key)).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("deleting cache object: %w", err)
	}
	return nil
}

// Clear removes every cached profile under the prefix.
func (c *CloudStorage) Clear(ctx context.Context) error {
	it := c.client.Bucket(c.bucket).Objects(ctx, &storage.Query{Prefix: c.prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("listing cache objects: %w", err)
		}
		if err := c.client.Bucket(c.bucket).Object(attrs.Name).Delete(ctx); err != nil {
			return fmt.Errorf("deleting cache object %s: %w", attrs.Name, err)
		}
	}
	return nil
}

// PurgeExpired removes only the expired profile objects. The server runs
// this on a daily schedule.
func (c *CloudStorage) PurgeExpired(ctx context.Context) (int, error) {
	now := time.Now()
	purged := 0

	it := c.client.Bucket(c.bucket).Objects(ctx, &storage.Query{Prefix: c.prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return purged, fmt.Errorf("listing cache objects: %w", err)
		}

		reader, err := c.client.Bucket(c.bucket).Object(attrs.Name).NewReader(ctx)
		if err != nil {
			continue
		}
		var entry Entry
		decodeErr := json.NewDecoder(reader).Decode(&entry)
		reader.Close()
		if decodeErr != nil || now.After(entry.ExpiresAt) {
			if err := c.client.Bucket(c.bucket).Object(attrs.Name).Delete(ctx); err == nil {
				purged++
			}
		}
	}
	return purged, nil
}

// Close releases the storage client.
func (c *CloudStorage) Close() error {
	return c.client.Close()
}
