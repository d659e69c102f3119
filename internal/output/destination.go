package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/cloudwriter"
	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/producers"
)

// Destination is where published messages end up.
type Destination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// keyedDestination is implemented by destinations that can partition by key.
type keyedDestination interface {
	WriteKeyedMessage(topic, key string, msg []byte) error
}

// NewDestination builds the destination named in cfg.
func NewDestination(ctx context.Context, cfg models.OutputConfig, logger *zap.Logger) (Destination, error) {
	switch cfg.Destination {
	case "", "console":
		return NewConsoleOutput(os.Stdout), nil
	case "json":
		return NewJSONOutput(cfg.Folder), nil
	case "parquet":
		return NewParquetOutput(cfg.Folder, logger), nil
	case "kafka":
		p, err := producers.NewSaramaProducer(cfg.KafkaBrokerList, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "s3":
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.S3Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		return NewS3Output(ctx, factory, cfg.S3Bucket, cfg.S3Prefix), nil
	default:
		return nil, fmt.Errorf("unsupported output destination: %s", cfg.Destination)
	}
}

// header is the part of a published report the destinations route on.
type header struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

func decodeHeader(msg []byte) (header, error) {
	var h header
	if err := json.Unmarshal(msg, &h); err != nil {
		return header{}, fmt.Errorf("decode report header: %w", err)
	}
	if h.GeneratedAt.IsZero() {
		return header{}, fmt.Errorf("report has no generatedAt")
	}
	return h, nil
}

// partitionPath lays files out by UTC day of generation.
func partitionPath(topic string, t time.Time) string {
	year, month, day := t.UTC().Date()
	return path.Join(topic, fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day))
}
