package media

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("post_images")
	require.NoError(t, err)
	assert.Equal(t, KindPostImages, k)

	_, err = ParseKind("../etc")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestNewObject(t *testing.T) {
	tests := []struct {
		name       string
		kind       Kind
		data       []byte
		expectType string
		expectExt  string
		expectErr  error
	}{
		{name: "PNG", kind: KindProfilePics, data: pngBytes, expectType: "image/png", expectExt: ".png"},
		{name: "JPEG", kind: KindStoryImages, data: jpegBytes, expectType: "image/jpeg", expectExt: ".jpg"},
		{name: "GIF", kind: KindPostImages, data: gifBytes, expectType: "image/gif", expectExt: ".gif"},
		{name: "Plain text", kind: KindPostImages, data: []byte("hello, not an image"), expectErr: ErrNotImage},
		{name: "Script disguised", kind: KindPostImages, data: []byte("<html><script>alert(1)</script></html>"), expectErr: ErrNotImage},
		{name: "Empty", kind: KindPostImages, data: nil, expectErr: ErrEmptyFile},
		{name: "Unknown kind", kind: Kind("avatars"), data: pngBytes, expectErr: ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := NewObject(tt.kind, tt.data)

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectType, obj.ContentType)
			assert.True(t, strings.HasSuffix(obj.Name, tt.expectExt))
			assert.True(t, strings.HasPrefix(obj.Key(), string(tt.kind)+"/"))
		})
	}
}

func TestFileStore_Save(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "/media/", zerolog.Nop())

	obj, err := NewObject(KindRestaurantImages, pngBytes)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), obj)

	require.NoError(t, err)
	assert.Equal(t, "/media/"+obj.Key(), url)

	written, err := os.ReadFile(filepath.Join(root, "restaurant_images", obj.Name))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, written)
}

func TestFileStore_RejectsEscapingKeys(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "/media", zerolog.Nop())

	_, err := store.Save(context.Background(), Object{Kind: Kind(".."), Name: "../outside.png", Data: pngBytes})

	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(filepath.Dir(root), "outside.png"))
	assert.True(t, os.IsNotExist(statErr))
}

// fakePutObject records PutObject calls.
type fakePutObject struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakePutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestPublicFS(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "stories"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stories", "x.png"), []byte("png"), 0o644))

	fsys := PublicFS(root)

	f, err := fsys.Open("/stories/x.png")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	for _, dir := range []string{"/", "/stories"} {
		_, err := fsys.Open(dir)
		assert.ErrorIs(t, err, fs.ErrNotExist, dir)
	}

	_, err = fsys.Open("/stories/missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestS3Store_Save(t *testing.T) {
	client := &fakePutObject{}
	store := newS3Store(client, "dinelt-media", "media/", "https://cdn.example.com/", zerolog.Nop())

	obj, err := NewObject(KindAccommodationImages, jpegBytes)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), obj)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/"+obj.Key(), url)
	require.NotNil(t, client.input)
	assert.Equal(t, "dinelt-media", aws.ToString(client.input.Bucket))
	assert.Equal(t, "media/"+obj.Key(), aws.ToString(client.input.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(len(jpegBytes)), aws.ToInt64(client.input.ContentLength))
}

func TestS3Store_SaveError(t *testing.T) {
	store := newS3Store(&fakePutObject{err: errors.New("access denied")}, "bucket", "", "https://b", zerolog.Nop())

	_, err := store.Save(context.Background(), Object{Kind: KindPostImages, Name: "x.png", Data: pngBytes})

	assert.ErrorContains(t, err, "access denied")
}

// stubStore is a Store returning canned results.
type stubStore struct {
	url   string
	err   error
	calls int
}

func (s *stubStore) Save(ctx context.Context, obj Object) (string, error) {
	s.calls++
	return s.url, s.err
}

func TestFallbackStore(t *testing.T) {
	obj := Object{Kind: KindPostImages, Name: "a.png", Data: pngBytes}

	tests := []struct {
		name       string
		s3         *stubStore
		s3Enabled  bool
		expectURL  string
		expectS3   int
		expectFile int
	}{
		{name: "S3 succeeds", s3: &stubStore{url: "https://s3/a.png"}, s3Enabled: true, expectURL: "https://s3/a.png", expectS3: 1},
		{name: "S3 fails", s3: &stubStore{err: errors.New("timeout")}, s3Enabled: true, expectURL: "/media/a.png", expectS3: 1, expectFile: 1},
		{name: "S3 disabled", s3: &stubStore{url: "https://s3/a.png"}, expectURL: "/media/a.png", expectFile: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &stubStore{url: "/media/a.png"}
			store := NewFallbackStore(tt.s3, file, tt.s3Enabled, zerolog.Nop())

			url, err := store.Save(context.Background(), obj)

			require.NoError(t, err)
			assert.Equal(t, tt.expectURL, url)
			assert.Equal(t, tt.expectS3, tt.s3.calls)
			assert.Equal(t, tt.expectFile, file.calls)
		})
	}

	t.Run("Nil S3 store", func(t *testing.T) {
		file := &stubStore{url: "/media/a.png"}
		store := NewFallbackStore(nil, file, true, zerolog.Nop())

		url, err := store.Save(context.Background(), obj)

		require.NoError(t, err)
		assert.Equal(t, "/media/a.png", url)
	})
}
