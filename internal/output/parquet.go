package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/models"
)

// SuggestionRecord is one parquet row: a single suggestion flattened with
// its report envelope.
type SuggestionRecord struct {
	ReportID         string  `parquet:"name=report_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RestaurantID     string  `parquet:"name=restaurant_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	GeneratedAt      int64   `parquet:"name=generated_at, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	ReferenceDate    int64   `parquet:"name=reference_date, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	Rank             int32   `parquet:"name=rank, type=INT32"`
	Type             string  `parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ItemID           string  `parquet:"name=item_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Reason           string  `parquet:"name=reason, type=BYTE_ARRAY, convertedtype=UTF8"`
	Impact           string  `parquet:"name=impact, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	SuggestedAction  string  `parquet:"name=suggested_action, type=BYTE_ARRAY, convertedtype=UTF8"`
	PredictedRevenue float64 `parquet:"name=predicted_revenue, type=DOUBLE"`
}

func recordsFromReport(r models.SuggestionReport) []SuggestionRecord {
	records := make([]SuggestionRecord, 0, len(r.Suggestions))
	for i, s := range r.Suggestions {
		records = append(records, SuggestionRecord{
			ReportID:         r.ID,
			RestaurantID:     r.RestaurantID,
			GeneratedAt:      r.GeneratedAt.UnixMilli(),
			ReferenceDate:    r.ReferenceDate.UnixMilli(),
			Rank:             int32(i + 1),
			Type:             string(s.Type),
			ItemID:           s.ItemID,
			Reason:           s.Reason,
			Impact:           string(s.Impact),
			SuggestedAction:  s.SuggestedAction,
			PredictedRevenue: s.PredictedRevenue,
		})
	}
	return records
}

type parquetPartition struct {
	mu   sync.Mutex
	file source.ParquetFile
	pw   *writer.ParquetWriter
}

// ParquetOutput writes one row per suggestion to
// <folder>/<topic>/year=YYYY/month=MM/day=DD/data.parquet. Files are only
// readable after Close has written the footer.
type ParquetOutput struct {
	folder     string
	logger     *zap.Logger
	mu         sync.Mutex
	partitions map[string]*parquetPartition
}

func NewParquetOutput(folder string, logger *zap.Logger) *ParquetOutput {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParquetOutput{
		folder:     folder,
		logger:     logger,
		partitions: make(map[string]*parquetPartition),
	}
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	var report models.SuggestionReport
	if err := json.Unmarshal(msg, &report); err != nil {
		return fmt.Errorf("decode report: %w", err)
	}
	if report.GeneratedAt.IsZero() {
		return fmt.Errorf("report has no generatedAt")
	}
	fullPath := filepath.Join(p.folder, filepath.FromSlash(partitionPath(topic, report.GeneratedAt)))

	part, err := p.partition(fullPath)
	if err != nil {
		return err
	}

	part.mu.Lock()
	defer part.mu.Unlock()
	for _, rec := range recordsFromReport(report) {
		if err := part.pw.Write(rec); err != nil {
			return fmt.Errorf("failed to write suggestion row: %w", err)
		}
	}
	return nil
}

func (p *ParquetOutput) partition(fullPath string) (*parquetPartition, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if part, ok := p.partitions[fullPath]; ok {
		return part, nil
	}
	if err := os.MkdirAll(fullPath, 0o755); err != nil {
		return nil, err
	}
	fw, err := local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, new(SuggestionRecord), 4)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	part := &parquetPartition{file: fw, pw: pw}
	p.partitions[fullPath] = part
	return part, nil
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, part := range p.partitions {
		part.mu.Lock()
		if err := part.pw.WriteStop(); err != nil {
			lastErr = err
			p.logger.Error("error closing parquet writer", zap.String("path", key), zap.Error(err))
		}
		if err := part.file.Close(); err != nil {
			lastErr = err
			p.logger.Error("error closing parquet file", zap.String("path", key), zap.Error(err))
		}
		part.mu.Unlock()
		delete(p.partitions, key)
	}
	return lastErr
}
