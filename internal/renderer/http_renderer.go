package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/ankitpatne/clipTag/internal/port"
)

// DetailsTTL bounds how long rendered video details stay cached.
const DetailsTTL = 5 * time.Minute

type httpRenderer struct {
	cache port.Cache
	now   func() time.Time
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache) port.HTTPRenderer {
	return &httpRenderer{cache: cache, now: time.Now}
}

// RenderGetVideo fetches video details either from cache or from the wrapped use
// case. It returns the JSON encoded output and a quoted ETag string.
func (r *httpRenderer) RenderGetVideo(ctx context.Context, getter port.VideoGetter, videoID string) ([]byte, string, error) {
	raw, err := r.cache.GetVideoDetails(ctx, videoID)
	etag, errEtag := r.cache.GetEtagVideoDetails(ctx, videoID)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := getter.GetVideo(ctx, videoID)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	validUntil := r.now().Add(DetailsTTL)
	r.cache.SetVideoDetails(ctx, videoID, raw, validUntil)
	r.cache.SetEtagVideoDetails(ctx, videoID, etag, validUntil)

	return raw, etag, nil
}
