// Package assets serves static files such as the placeholder image from a
// local directory or a Cloud Storage bucket.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// PlaceholderPath is the store path of the bundled placeholder image.
const PlaceholderPath = "img/placeholder.svg"

// ErrNotFound is returned when an asset does not exist.
var ErrNotFound = errors.New("asset not found")

// Info describes an opened asset.
type Info struct {
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Store reads static assets by slash-separated path.
type Store interface {
	Open(ctx context.Context, name string) (io.ReadCloser, Info, error)
	List(ctx context.Context) ([]string, error)
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func cleanName(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return name, nil
}

// DirStore serves assets from a directory on disk.
type DirStore struct {
	fsys fs.FS
}

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{fsys: os.DirFS(dir)}
}

// NewFSStore creates a store over any fs.FS.
func NewFSStore(fsys fs.FS) *DirStore {
	return &DirStore{fsys: fsys}
}

func (d *DirStore) Open(_ context.Context, name string) (io.ReadCloser, Info, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, Info{}, err
	}

	f, err := d.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Info{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, Info{}, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, Info{}, err
	}
	if stat.IsDir() {
		f.Close()
		return nil, Info{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return f, Info{ContentType: contentType(name), Size: stat.Size(), ModTime: stat.ModTime()}, nil
}

func (d *DirStore) List(_ context.Context) ([]string, error) {
	var names []string
	err := fs.WalkDir(d.fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// BucketStore serves assets from a Cloud Storage bucket, optionally under a prefix.
type BucketStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewBucketStore creates a Cloud Storage client for bucket. Close releases it.
func NewBucketStore(ctx context.Context, bucket, prefix string) (*BucketStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &BucketStore{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

func (b *BucketStore) objectName(name string) string {
	if b.prefix == "" {
		return name
	}
	return b.prefix + "/" + name
}

func (b *BucketStore) Open(ctx context.Context, name string) (io.ReadCloser, Info, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, Info{}, err
	}

	r, err := b.client.Bucket(b.bucket).Object(b.objectName(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, Info{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, Info{}, fmt.Errorf("failed to open %s: %w", name, err)
	}

	ct := r.Attrs.ContentType
	if ct == "" {
		ct = contentType(name)
	}
	return r, Info{ContentType: ct, Size: r.Attrs.Size, ModTime: r.Attrs.LastModified}, nil
}

func (b *BucketStore) List(ctx context.Context) ([]string, error) {
	query := &storage.Query{}
	if b.prefix != "" {
		query.Prefix = b.prefix + "/"
	}

	var names []string
	it := b.client.Bucket(b.bucket).Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		names = append(names, strings.TrimPrefix(attrs.Name, query.Prefix))
	}
	sort.Strings(names)
	return names, nil
}

// Close releases the storage client.
func (b *BucketStore) Close() error {
	return b.client.Close()
}

// Exists reports whether name can be opened from store.
func Exists(ctx context.Context, store Store, name string) bool {
	rc, _, err := store.Open(ctx, name)
	if err != nil {
		return false
	}
	rc.Close()
	return true
}
