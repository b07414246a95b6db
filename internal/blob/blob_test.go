package blob_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/compliance/internal/blob"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

type store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (entity.DownloadedFile, error)
	Delete(ctx context.Context, key string) error
}

func TestStores(t *testing.T) {
	t.Parallel()

	s3Store, err := blob.NewS3(context.Background(), blob.S3Config{
		Bucket:          "compliance",
		Endpoint:        "https://mock.s3.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	}, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: newFakeS3()}
	})
	require.NoError(t, err)

	stores := map[string]store{
		"memory": blob.NewMemory(),
		"s3":     s3Store,
	}

	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			key := blob.EvidenceKey("E-1", "reports/Q1.pdf")

			require.Equal(t, "evidence/E-1/Q1.pdf", key)

			err := st.Put(ctx, key, "application/pdf", []byte("%PDF-1.4"))
			require.NoError(t, err)

			got, err := st.Get(ctx, key)
			require.NoError(t, err)
			require.Equal(t, entity.DownloadedFile{Name: "Q1.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}, got)

			require.NoError(t, st.Delete(ctx, key))

			_, err = st.Get(ctx, key)
			require.ErrorIs(t, err, entity.ErrNotFound)
		})
	}
}

func TestRef(t *testing.T) {
	t.Parallel()

	key, ok := blob.KeyFromRef(blob.Ref("documents/P-1/a.pdf"))
	require.True(t, ok)
	require.Equal(t, "documents/P-1/a.pdf", key)

	_, ok = blob.KeyFromRef("https://example.com/a.pdf")
	require.False(t, ok)
}

// fakeS3 answers path-style Put/Get/Delete requests from memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]fakeObject
}

type fakeObject struct {
	body        []byte
	contentType string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string]fakeObject)}
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)

	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch req.Method {
	case http.MethodPut:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}

		f.objects[key] = fakeObject{body: body, contentType: req.Header.Get("Content-Type")}

		return response(http.StatusOK, nil, http.Header{"Etag": {`"etag"`}}), nil
	case http.MethodGet:
		obj, ok := f.objects[key]
		if !ok {
			return response(http.StatusNotFound, nil, http.Header{}), nil
		}

		return response(http.StatusOK, obj.body, http.Header{"Content-Type": {obj.contentType}}), nil
	case http.MethodDelete:
		delete(f.objects, key)
		return response(http.StatusNoContent, nil, http.Header{}), nil
	default:
		return response(http.StatusNotImplemented, nil, http.Header{}), nil
	}
}

func response(code int, body []byte, header http.Header) *http.Response {
	return &http.Response{
		StatusCode:    code,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}
