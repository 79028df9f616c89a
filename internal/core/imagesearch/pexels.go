package imagesearch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"tariften-backend/internal/pkg/common"
)

const pexelsBaseURL = "https://api.pexels.com/v1"

// PexelsProvider searches Pexels for landscape photos. It is the fallback
// behind Unsplash.
type PexelsProvider struct {
	client *resty.Client
	apiKey string
}

// NewPexelsProvider creates the Pexels search provider. An empty API key
// leaves the provider unconfigured and it is skipped.
func NewPexelsProvider(apiKey string) *PexelsProvider {
	client := resty.New().
		SetBaseURL(pexelsBaseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(1)
	return &PexelsProvider{client: client, apiKey: apiKey}
}

func (p *PexelsProvider) Name() string { return "pexels" }

func (p *PexelsProvider) Configured() bool { return p.apiKey != "" }

type pexelsSearchResponse struct {
	Photos []struct {
		Src struct {
			Landscape string `json:"landscape"`
		} `json:"src"`
		Alt string `json:"alt"`
	} `json:"photos"`
}

// Search returns up to count landscape candidates for the query.
func (p *PexelsProvider) Search(ctx context.Context, query string, count int) ([]Candidate, error) {
	var body pexelsSearchResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", p.apiKey).
		SetQueryParams(map[string]string{
			"query":       query,
			"per_page":    fmt.Sprintf("%d", count),
			"orientation": "landscape",
		}).
		SetResult(&body).
		Get("/search")
	if err != nil {
		return nil, common.NewProviderError("pexels search request failed", err)
	}
	if resp.IsError() {
		return nil, common.NewProviderError(
			fmt.Sprintf("pexels search returned status %d", resp.StatusCode()), nil)
	}

	out := make([]Candidate, 0, len(body.Photos))
	for _, ph := range body.Photos {
		if ph.Src.Landscape == "" {
			continue
		}
		out = append(out, Candidate{URL: ph.Src.Landscape, Description: ph.Alt})
	}
	return out, nil
}
