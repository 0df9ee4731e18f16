package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"menuboard/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	tests := []struct {
		name     string
		imageURL string
		bucket   string
		wantKey  string
		wantErr  bool
	}{
		{
			name:     "valid minio url",
			imageURL: "http://localhost:9000/menu-images/categories/abc/1700000000000.png",
			bucket:   "menu-images",
			wantKey:  "categories/abc/1700000000000.png",
		},
		{
			name:     "url encoded path segment",
			imageURL: "http://localhost:9000/menu-images/items/abc/caf%C3%A9.png",
			bucket:   "menu-images",
			wantKey:  "items/abc/café.png",
		},
		{
			name:     "different bucket in path",
			imageURL: "http://localhost:9000/other-bucket/categories/abc/1.png",
			bucket:   "menu-images",
			wantErr:  true,
		},
		{
			name:     "bucket name only no key",
			imageURL: "http://localhost:9000/menu-images/",
			bucket:   "menu-images",
			wantErr:  true,
		},
		{
			name:     "no path at all",
			imageURL: "http://localhost:9000",
			bucket:   "menu-images",
			wantErr:  true,
		},
		{
			name:     "bucket as prefix of another bucket",
			imageURL: "http://localhost:9000/menu-images-old/categories/abc/1.png",
			bucket:   "menu-images",
			wantErr:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key, err := ObjectKeyFromURL(tc.imageURL, tc.bucket)
			if tc.wantErr {
				assert.True(t, errors.Is(err, common.ErrInvalidURLFormat))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantKey, key)
		})
	}
}

func TestImageKeys(t *testing.T) {
	id := uuid.New()
	now := time.UnixMilli(1700000000000)

	categoryKey := CategoryImageKey(id, "photo.png", now)
	assert.True(t, strings.HasPrefix(categoryKey, "categories/"+id.String()+"/1700000000000-"))
	assert.True(t, strings.HasSuffix(categoryKey, ".png"))

	itemKey := ItemImageKey(id, "dish.jpeg", now)
	assert.True(t, strings.HasPrefix(itemKey, "items/"+id.String()+"/1700000000000-"))
	assert.True(t, strings.HasSuffix(itemKey, ".jpeg"))

	// Filename without an extension still yields a usable key.
	bareKey := CategoryImageKey(id, "photo", now)
	assert.True(t, strings.HasPrefix(bareKey, "categories/"+id.String()+"/1700000000000-"))
	assert.NotContains(t, bareKey, ".")

	// A replaced upload round-trips through the URL mapping.
	url := "http://localhost:9000/menu-images/" + categoryKey
	key, err := ObjectKeyFromURL(url, "menu-images")
	assert.NoError(t, err)
	assert.Equal(t, categoryKey, key)
}

// Two uploads for the same document in the same millisecond must still land
// under distinct keys, or a create-then-edit on a fast machine would
// overwrite its own blob.
func TestImageKeys_UniquePerUploadAtSameInstant(t *testing.T) {
	id := uuid.New()
	now := time.UnixMilli(1700000000000)

	first := CategoryImageKey(id, "photo.png", now)
	second := CategoryImageKey(id, "photo.png", now)
	assert.NotEqual(t, first, second)

	assert.NotEqual(t, ItemImageKey(id, "dish.png", now), ItemImageKey(id, "dish.png", now))
}
