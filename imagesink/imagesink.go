// Package imagesink encodes rendered images and writes them to local files,
// Google Cloud Storage, or S3.
package imagesink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"prism/rgbimage"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
	"github.com/golang/glog"
	googleopt "google.golang.org/api/option"
)

// Destination is where an encoded image goes.  Scheme is "file", "gs", or
// "s3".  For files, Key is the path and Bucket is empty.
type Destination struct {
	Scheme string
	Bucket string
	Key    string
}

func (d Destination) String() string {
	if d.Scheme == "file" {
		return d.Key
	}
	return d.Scheme + "://" + d.Bucket + "/" + d.Key
}

// ParseDestination accepts gs://bucket/key, s3://bucket/key, or a local path.
func ParseDestination(s string) (Destination, error) {
	if s == "" {
		return Destination{}, fmt.Errorf("empty output destination")
	}
	if !strings.HasPrefix(s, "gs://") && !strings.HasPrefix(s, "s3://") {
		return Destination{Scheme: "file", Key: s}, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return Destination{}, fmt.Errorf("while parsing destination %q: %w", s, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return Destination{}, fmt.Errorf("destination %q needs both a bucket and an object name", s)
	}
	return Destination{Scheme: u.Scheme, Bucket: u.Host, Key: key}, nil
}

var contentTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

// Encode writes img to w in the format implied by name's extension and
// returns the matching MIME type.
func Encode(w io.Writer, img *rgbimage.Image, name string) (string, error) {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return "", fmt.Errorf("while choosing image format for %s: %w", name, err)
	}
	if err := imaging.Encode(w, img.ToNRGBA(), format, imaging.JPEGQuality(95)); err != nil {
		return "", fmt.Errorf("while encoding %v: %w", format, err)
	}
	return contentTypes[format], nil
}

// Sink stores encoded image bytes.
type Sink interface {
	Put(ctx context.Context, dest Destination, data []byte, contentType string) error
}

// FileSink writes to the local filesystem.
type FileSink struct{}

func (FileSink) Put(ctx context.Context, dest Destination, data []byte, contentType string) error {
	if err := os.WriteFile(dest.Key, data, 0o644); err != nil {
		return fmt.Errorf("while writing %s: %w", dest.Key, err)
	}
	return nil
}

// GCSSink writes objects to Google Cloud Storage.
type GCSSink struct {
	Client *storage.Client
}

func (g *GCSSink) Put(ctx context.Context, dest Destination, data []byte, contentType string) error {
	w := g.Client.Bucket(dest.Bucket).Object(dest.Key).NewWriter(ctx)
	w.ContentType = contentType

	// Disable chunking; images are written in one shot.
	w.ChunkSize = 0

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("while writing %s to object writer: %w", dest, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("while closing object writer for %s: %w", dest, err)
	}
	return nil
}

// S3Sink writes objects to S3 or an S3-compatible store.
type S3Sink struct {
	Client s3iface.S3API
}

func (s *S3Sink) Put(ctx context.Context, dest Destination, data []byte, contentType string) error {
	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(dest.Bucket),
		Key:           aws.String(dest.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("while uploading %s: %w", dest, err)
	}
	return nil
}

type saveConfig struct {
	sinks map[string]Sink
}

type SaveOption func(*saveConfig)

// WithSink routes destinations with the given scheme to sink.
func WithSink(scheme string, sink Sink) SaveOption {
	return func(c *saveConfig) {
		c.sinks[scheme] = sink
	}
}

// Save encodes img and stores it at dest.  Cloud clients are created on
// demand from ambient credentials unless a sink is supplied with WithSink.
func Save(ctx context.Context, img *rgbimage.Image, dest string, opts ...SaveOption) error {
	d, err := ParseDestination(dest)
	if err != nil {
		return err
	}

	cfg := &saveConfig{sinks: map[string]Sink{"file": FileSink{}}}
	for _, o := range opts {
		o(cfg)
	}

	buf := &bytes.Buffer{}
	contentType, err := Encode(buf, img, d.Key)
	if err != nil {
		return err
	}

	sink, ok := cfg.sinks[d.Scheme]
	if !ok {
		sink, err = defaultSink(ctx, d.Scheme)
		if err != nil {
			return err
		}
	}

	if err := sink.Put(ctx, d, buf.Bytes(), contentType); err != nil {
		return err
	}
	glog.Infof("Wrote %d bytes of %s to %v", buf.Len(), contentType, d)
	return nil
}

func defaultSink(ctx context.Context, scheme string) (Sink, error) {
	switch scheme {
	case "gs":
		gcs, err := storage.NewClient(ctx, googleopt.WithGRPCConnectionPool(1))
		if err != nil {
			return nil, fmt.Errorf("while creating storage client: %w", err)
		}
		return &GCSSink{Client: gcs}, nil
	case "s3":
		sess, err := session.NewSessionWithOptions(session.Options{SharedConfigState: session.SharedConfigEnable})
		if err != nil {
			return nil, fmt.Errorf("while creating S3 session: %w", err)
		}
		return &S3Sink{Client: s3.New(sess)}, nil
	}
	return nil, fmt.Errorf("no sink for scheme %q", scheme)
}
