package output

import (
	"context"
	"fmt"
	"path"

	"github.com/chrisdamba/menuintel/internal/cloudwriter"
)

// S3Output uploads every report as its own object under
// <prefix>/<topic>/year=YYYY/month=MM/day=DD/<report id>.json.
type S3Output struct {
	ctx     context.Context
	factory cloudwriter.CloudWriterFactory
	bucket  string
	prefix  string
}

func NewS3Output(ctx context.Context, factory cloudwriter.CloudWriterFactory, bucket, prefix string) *S3Output {
	return &S3Output{ctx: ctx, factory: factory, bucket: bucket, prefix: prefix}
}

func (s *S3Output) WriteMessage(topic string, msg []byte) error {
	h, err := decodeHeader(msg)
	if err != nil {
		return err
	}
	if h.ID == "" {
		return fmt.Errorf("report has no id")
	}
	key := path.Join(s.prefix, partitionPath(topic, h.GeneratedAt), h.ID+".json")

	w, err := s.factory.NewWriter(s.ctx, s.bucket, key, "application/json")
	if err != nil {
		return fmt.Errorf("failed to create cloud writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *S3Output) Close() error { return nil }
