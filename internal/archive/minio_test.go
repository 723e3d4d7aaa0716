package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStore struct {
	exists      bool
	existsCalls int
	made        []string
	objects     map[string][]byte
	putErr      error
}

func (f *fakeObjectStore) BucketExists(_ context.Context, _ string) (bool, error) {
	f.existsCalls++
	return f.exists, nil
}

func (f *fakeObjectStore) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.made = append(f.made, bucket)
	f.exists = true
	return nil
}

func (f *fakeObjectStore) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[objectName] = b
	return minio.UploadInfo{Key: objectName, Size: int64(len(b))}, nil
}

func TestObjectName(t *testing.T) {
	ev := Event{At: time.Date(2026, 3, 7, 23, 59, 0, 0, time.FixedZone("X", -2*3600))}
	assert.Equal(t, "auth-events/2026/03/08/abc.json", ObjectName(ev, "abc"))
}

func TestMinioRecorder_Record(t *testing.T) {
	store := &fakeObjectStore{}
	rec := newMinioRecorder(store, "auth-events")
	rec.newID = func() string { return "id-1" }

	ev := Event{
		TelegramID: 42,
		Username:   "ann1",
		Endpoint:   "/auth/telegram",
		InitData:   map[string]string{"auth_date": "1"},
		At:         time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, rec.Record(context.Background(), ev))
	require.NoError(t, rec.Record(context.Background(), ev))

	assert.Equal(t, []string{"auth-events"}, store.made, "bucket is created once")
	assert.Equal(t, 1, store.existsCalls)

	body, ok := store.objects["auth-events/2026/10/19/id-1.json"]
	require.True(t, ok)
	var got Event
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, int64(42), got.TelegramID)
	assert.Equal(t, "1", got.InitData["auth_date"])
}

func TestMinioRecorder_PutError(t *testing.T) {
	store := &fakeObjectStore{exists: true, putErr: errors.New("boom")}
	rec := newMinioRecorder(store, "b")

	err := rec.Record(context.Background(), Event{At: time.Now()})
	assert.ErrorContains(t, err, "boom")
	assert.Empty(t, store.made)
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	assert.NoError(t, r.Record(context.Background(), Event{}))
}
