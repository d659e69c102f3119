package output

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/models"
)

type Publisher struct {
	dest   Destination
	topic  string
	logger *zap.Logger
}

func NewPublisher(dest Destination, topic string, logger *zap.Logger) *Publisher {
	if topic == "" {
		topic = models.SuggestionTopic
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{dest: dest, topic: topic, logger: logger}
}

// PublishReport writes the report as JSON. Destinations that support keys
// get the restaurant ID as the message key.
func (p *Publisher) PublishReport(report models.SuggestionReport) error {
	msg, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", report.ID, err)
	}

	if kd, ok := p.dest.(keyedDestination); ok {
		err = kd.WriteKeyedMessage(p.topic, report.RestaurantID, msg)
	} else {
		err = p.dest.WriteMessage(p.topic, msg)
	}
	if err != nil {
		return fmt.Errorf("publish report %s: %w", report.ID, err)
	}

	p.logger.Info("report published",
		zap.String("report_id", report.ID),
		zap.String("restaurant_id", report.RestaurantID),
		zap.String("topic", p.topic),
		zap.Int("suggestions", len(report.Suggestions)),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.dest.Close()
}
