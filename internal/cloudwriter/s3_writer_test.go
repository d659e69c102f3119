package cloudwriter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts map[string][]byte
	meta map[string]string
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.puts[key] = body
	f.meta[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestS3WriterUploadsOnClose(t *testing.T) {
	client := &fakeS3{puts: map[string][]byte{}, meta: map[string]string{}}
	f := NewS3WriterFactoryWithClient(client)

	w, err := f.NewWriter(context.Background(), "bucket", "a/b.json", "application/json")
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"a":`))
	require.NoError(t, err)
	_, err = w.Write([]byte(`1}`))
	require.NoError(t, err)
	assert.Empty(t, client.puts)

	require.NoError(t, w.Close())
	assert.Equal(t, `{"a":1}`, string(client.puts["bucket/a/b.json"]))
	assert.Equal(t, "application/json", client.meta["bucket/a/b.json"])

	require.NoError(t, w.Close())
	_, err = w.Write([]byte("x"))
	assert.Error(t, err)
}

func TestS3WriterErrors(t *testing.T) {
	f := NewS3WriterFactoryWithClient(&fakeS3{err: errors.New("denied")})

	_, err := f.NewWriter(context.Background(), "", "k", "")
	assert.Error(t, err)

	w, err := f.NewWriter(context.Background(), "bucket", "k", "")
	require.NoError(t, err)
	assert.ErrorContains(t, w.Close(), "denied")
}
