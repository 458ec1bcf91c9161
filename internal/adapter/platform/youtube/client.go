// Package youtube looks up video metadata through the YouTube Data API
// v3. Only the fields the ingestion pipeline consults are extracted:
// the title and whether the platform reports a caption track.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/bnema/insightreel/internal/domain"
	"github.com/bnema/insightreel/internal/port"
)

const videosEndpoint = "https://www.googleapis.com/youtube/v3/videos"

var ErrMissingAPIKey = errors.New("youtube api key not configured")

type Client struct {
	apiKey string
	http   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Details(ctx context.Context, videoURL string) (*port.VideoDetails, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	videoID, err := ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("part", "snippet,contentDetails")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videosEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube api request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("youtube api response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube api status %d: %s",
			resp.StatusCode, gjson.GetBytes(body, "error.message").String())
	}

	return parseDetails(body)
}

func parseDetails(body []byte) (*port.VideoDetails, error) {
	item := gjson.GetBytes(body, "items.0")
	if !item.Exists() {
		return nil, domain.ErrNotFound
	}
	return &port.VideoDetails{
		Title:       item.Get("snippet.title").String(),
		HasCaptions: item.Get("contentDetails.caption").String() == "true",
	}, nil
}

// ExtractVideoID pulls the video identifier out of a watch URL. Both
// the ?v= query form and short/embed path forms are accepted.
func ExtractVideoID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid video URL: %w", err)
	}
	if id := u.Query().Get("v"); id != "" {
		return id, nil
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := segments[len(segments)-1]
	if id == "" {
		return "", fmt.Errorf("could not extract video id from %s", rawURL)
	}
	return id, nil
}

var _ port.VideoPlatform = (*Client)(nil)
