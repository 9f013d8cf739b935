package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const giphyBaseURL = "https://api.giphy.com/v1/gifs/random"

// GiphyImages holds the candidate GIF URLs of a single lookup at the
// resolutions the notifier cares about.
type GiphyImages struct {
	DownsizedSmall string
	FixedHeight    string
	Original       string
}

// BestURL picks the best available resolution: downsized small first, then
// fixed height, then the original.
func (i *GiphyImages) BestURL() string {
	if i.DownsizedSmall != "" {
		return i.DownsizedSmall
	}
	if i.FixedHeight != "" {
		return i.FixedHeight
	}
	return i.Original
}

// GiphyClient looks up random GIFs through the Giphy REST API
type GiphyClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGiphyClient(apiKey string) *GiphyClient {
	return &GiphyClient{
		apiKey:  apiKey,
		baseURL: giphyBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type giphyRandomResponse struct {
	Data struct {
		Images struct {
			DownsizedSmall struct {
				URL string `json:"url"`
			} `json:"downsized_small"`
			FixedHeight struct {
				URL string `json:"url"`
			} `json:"fixed_height"`
			Original struct {
				URL string `json:"url"`
			} `json:"original"`
		} `json:"images"`
	} `json:"data"`
}

// Random looks up a random G-rated GIF for the given search term
func (g *GiphyClient) Random(ctx context.Context, term string) (*GiphyImages, error) {
	query := url.Values{}
	query.Set("api_key", g.apiKey)
	query.Set("tag", term)
	query.Set("rating", "g")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("giphy returned status %d", resp.StatusCode)
	}

	var decoded giphyRandomResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	return &GiphyImages{
		DownsizedSmall: decoded.Data.Images.DownsizedSmall.URL,
		FixedHeight:    decoded.Data.Images.FixedHeight.URL,
		Original:       decoded.Data.Images.Original.URL,
	}, nil
}

// Download fetches a GIF and stores it at the given path
func (g *GiphyClient) Download(ctx context.Context, gifURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gifURL, nil)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gif download returned status %d", resp.StatusCode)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, resp.Body)
	return err
}
