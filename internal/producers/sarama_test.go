package producers

import (
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWriteKeyedMessage(t *testing.T) {
	sp := mocks.NewSyncProducer(t, NewSaramaConfig())
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "suggestions" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "r1" {
			return errors.New("unexpected key " + string(key))
		}
		return nil
	})

	p := NewSaramaProducerFromSync(sp, zaptest.NewLogger(t))
	require.NoError(t, p.WriteKeyedMessage("suggestions", "r1", []byte(`{"id":"x"}`)))
	require.NoError(t, p.Close())
}

func TestWriteMessageFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, NewSaramaConfig())
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewSaramaProducerFromSync(sp, zaptest.NewLogger(t))
	err := p.WriteMessage("suggestions", []byte("{}"))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestUninitializedProducer(t *testing.T) {
	p := &SaramaProducer{}
	assert.Error(t, p.WriteMessage("t", nil))
	assert.NoError(t, p.Close())
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, splitBrokers(""))
}

func TestNewSaramaProducerNeedsBrokers(t *testing.T) {
	_, err := NewSaramaProducer(" , ", zaptest.NewLogger(t))
	assert.Error(t, err)
}
