package media

import (
	"context"
	"errors"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Kind is the folder an uploaded image belongs to.
type Kind string

const (
	KindProfilePics         Kind = "profile_pics"
	KindUserImages          Kind = "user_images"
	KindPostImages          Kind = "post_images"
	KindStoryImages         Kind = "story_images"
	KindRestaurantImages    Kind = "restaurant_images"
	KindAccommodationImages Kind = "accommodation_images"
)

var kinds = map[Kind]bool{
	KindProfilePics:         true,
	KindUserImages:          true,
	KindPostImages:          true,
	KindStoryImages:         true,
	KindRestaurantImages:    true,
	KindAccommodationImages: true,
}

// allowedTypes maps accepted image MIME types to the extension stored on disk.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var (
	ErrUnknownKind = errors.New("unknown media kind")
	ErrNotImage    = errors.New("file is not a supported image")
	ErrEmptyFile   = errors.New("file is empty")
)

// Object is an image ready to be stored.
type Object struct {
	Kind        Kind
	Name        string
	ContentType string
	Data        []byte
}

// Key is the object path relative to the storage root, e.g. "post_images/<uuid>.png".
func (o Object) Key() string {
	return path.Join(string(o.Kind), o.Name)
}

// Store persists uploaded objects and returns the public URL they are served from.
type Store interface {
	Save(ctx context.Context, obj Object) (string, error)
}

// ParseKind validates a kind taken from a URL.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !kinds[k] {
		return "", ErrUnknownKind
	}
	return k, nil
}

// NewObject sniffs data and names the object with a random UUID. Only the
// image types in allowedTypes are accepted, whatever the client claimed.
func NewObject(kind Kind, data []byte) (Object, error) {
	if !kinds[kind] {
		return Object{}, ErrUnknownKind
	}
	if len(data) == 0 {
		return Object{}, ErrEmptyFile
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedTypes[mtype.String()]
	if !ok {
		return Object{}, ErrNotImage
	}

	return Object{
		Kind:        kind,
		Name:        uuid.NewString() + ext,
		ContentType: mtype.String(),
		Data:        data,
	}, nil
}
