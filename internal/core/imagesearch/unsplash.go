package imagesearch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"tariften-backend/internal/pkg/common"
)

const unsplashBaseURL = "https://api.unsplash.com"

// UnsplashProvider searches Unsplash for landscape photos.
type UnsplashProvider struct {
	client    *resty.Client
	accessKey string
}

// NewUnsplashProvider creates the Unsplash search provider. An empty
// access key leaves the provider unconfigured and it is skipped.
func NewUnsplashProvider(accessKey string) *UnsplashProvider {
	client := resty.New().
		SetBaseURL(unsplashBaseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(1)
	return &UnsplashProvider{client: client, accessKey: accessKey}
}

func (p *UnsplashProvider) Name() string { return "unsplash" }

func (p *UnsplashProvider) Configured() bool { return p.accessKey != "" }

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		AltDescription string `json:"alt_description"`
		Description    string `json:"description"`
	} `json:"results"`
}

// Search returns up to count landscape candidates for the query.
func (p *UnsplashProvider) Search(ctx context.Context, query string, count int) ([]Candidate, error) {
	var body unsplashSearchResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Client-ID "+p.accessKey).
		SetQueryParams(map[string]string{
			"query":       query,
			"per_page":    fmt.Sprintf("%d", count),
			"orientation": "landscape",
		}).
		SetResult(&body).
		Get("/search/photos")
	if err != nil {
		return nil, common.NewProviderError("unsplash search request failed", err)
	}
	if resp.IsError() {
		return nil, common.NewProviderError(
			fmt.Sprintf("unsplash search returned status %d", resp.StatusCode()), nil)
	}

	out := make([]Candidate, 0, len(body.Results))
	for _, r := range body.Results {
		if r.URLs.Regular == "" {
			continue
		}
		alt := r.AltDescription
		if alt == "" {
			alt = r.Description
		}
		out = append(out, Candidate{URL: r.URLs.Regular, Description: alt})
	}
	return out, nil
}
