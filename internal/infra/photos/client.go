package photos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

const (
	// Scope grants read-only access to the signed-in user's library.
	Scope          = "https://www.googleapis.com/auth/photoslibrary.readonly"
	defaultBaseURL = "https://photoslibrary.googleapis.com/v1"
	pageSize       = 50

	// MaxDownloadBytes bounds a single full-resolution download.
	MaxDownloadBytes = 50 << 20
)

// ErrReauthRequired means the access token expired or was revoked. There is
// no silent refresh; the user has to sign in again.
var ErrReauthRequired = errors.New("photo library session expired, sign in again")

type Album struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	MediaItemsCount   string `json:"mediaItemsCount,omitempty"`
	CoverPhotoBaseURL string `json:"coverPhotoBaseUrl,omitempty"`
}

type MediaItem struct {
	ID            string        `json:"id"`
	Filename      string        `json:"filename"`
	MimeType      string        `json:"mimeType"`
	BaseURL       string        `json:"baseUrl"`
	MediaMetadata MediaMetadata `json:"mediaMetadata"`
}

type MediaMetadata struct {
	CreationTime time.Time `json:"creationTime"`
}

// ThumbnailURL asks the media host for a cropped square preview.
func (m MediaItem) ThumbnailURL(size int) string {
	return fmt.Sprintf("%s=w%d-h%d-c", m.BaseURL, size, size)
}

// DownloadURL returns the original bytes.
func (m MediaItem) DownloadURL() string {
	return m.BaseURL + "=d"
}

type AlbumPage struct {
	Albums        []Album `json:"albums"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}

type MediaPage struct {
	MediaItems    []MediaItem `json:"mediaItems"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient authenticates every request with accessToken.
func NewClient(ctx context.Context, accessToken string) *Client {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = 60 * time.Second
	return &Client{BaseURL: defaultBaseURL, HTTPClient: httpClient}
}

func (c *Client) ListAlbums(ctx context.Context, pageToken string) (AlbumPage, error) {
	q := url.Values{}
	q.Set("pageSize", fmt.Sprint(pageSize))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	var out AlbumPage
	err := c.doJSON(ctx, http.MethodGet, c.BaseURL+"/albums?"+q.Encode(), nil, &out)
	if out.Albums == nil {
		out.Albums = []Album{}
	}
	return out, err
}

func (c *Client) ListAlbumItems(ctx context.Context, albumID, pageToken string) (MediaPage, error) {
	body := map[string]interface{}{
		"albumId":  albumID,
		"pageSize": pageSize,
	}
	if pageToken != "" {
		body["pageToken"] = pageToken
	}

	var out MediaPage
	err := c.doJSON(ctx, http.MethodPost, c.BaseURL+"/mediaItems:search", body, &out)
	if out.MediaItems == nil {
		out.MediaItems = []MediaItem{}
	}
	return out, err
}

func (c *Client) GetMediaItem(ctx context.Context, id string) (MediaItem, error) {
	var out MediaItem
	err := c.doJSON(ctx, http.MethodGet, c.BaseURL+"/mediaItems/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Download fetches the full-resolution bytes of item.
func (c *Client) Download(ctx context.Context, item MediaItem) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.DownloadURL(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", item.Filename, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", item.Filename, err)
	}
	if len(data) > MaxDownloadBytes {
		return nil, fmt.Errorf("download %s: image larger than %d bytes", item.Filename, MaxDownloadBytes)
	}
	return data, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("photo library: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("photo library: decode response: %w", err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrReauthRequired
	case resp.StatusCode >= 300:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("photo library request failed (%d): %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}
