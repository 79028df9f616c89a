package imagesearch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	name       string
	configured bool
	candidates []Candidate
	err        error
	gotQuery   string
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Search(ctx context.Context, query string, count int) ([]Candidate, error) {
	f.gotQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func TestResolveStrictMatch(t *testing.T) {
	p := &fakeProvider{name: "fake", configured: true, candidates: []Candidate{
		{URL: "https://img/1", Description: "scrambled eggs with tomatoes"},
		{URL: "https://img/2", Description: "menemen yemeği tabakta"},
	}}
	svc := NewService(p)

	got := svc.Resolve(context.Background(), "menemen", "menemen")
	assert.Equal(t, "https://img/2", got)
}

func TestResolveEmptyStrictTermTakesFirst(t *testing.T) {
	p := &fakeProvider{name: "fake", configured: true, candidates: []Candidate{
		{URL: "https://img/1", Description: "anything"},
		{URL: "https://img/2", Description: "else"},
	}}
	svc := NewService(p)

	got := svc.Resolve(context.Background(), "dinner table", "")
	assert.Equal(t, "https://img/1", got)
}

func TestResolveFallsThroughProviders(t *testing.T) {
	first := &fakeProvider{name: "first", configured: true, err: errors.New("boom")}
	second := &fakeProvider{name: "second", configured: true, candidates: []Candidate{
		{URL: "https://img/ok", Description: "mercimek corbasi in a bowl"},
	}}
	svc := NewService(first, second)

	got := svc.Resolve(context.Background(), "mercimek çorbası", "Mercimek Çorbası")
	assert.Equal(t, "https://img/ok", got)
}

func TestResolveSkipsUnconfiguredProviders(t *testing.T) {
	skipped := &fakeProvider{name: "skipped", configured: false}
	active := &fakeProvider{name: "active", configured: true, candidates: []Candidate{
		{URL: "https://img/a", Description: "baklava dessert"},
	}}
	svc := NewService(skipped, active)

	got := svc.Resolve(context.Background(), "baklava", "baklava")
	assert.Equal(t, "https://img/a", got)
	assert.Empty(t, skipped.gotQuery)
}

func TestResolvePlaceholderWhenNothingMatches(t *testing.T) {
	p := &fakeProvider{name: "fake", configured: true, candidates: []Candidate{
		{URL: "https://img/1", Description: "unrelated landscape"},
	}}
	svc := NewService(p)

	got := svc.Resolve(context.Background(), "işkembe çorbası", "İşkembe Çorbası")
	assert.True(t, strings.HasPrefix(got, "https://placehold.co/800x600/db4c3f/ffffff?text="))
	assert.Contains(t, got, "%C4%B0%C5%9Fkembe")
}

func TestQueryGetsFoodContext(t *testing.T) {
	p := &fakeProvider{name: "fake", configured: true, candidates: []Candidate{
		{URL: "https://img/1", Description: "menemen"},
	}}
	svc := NewService(p)

	svc.Resolve(context.Background(), "menemen", "")
	assert.Equal(t, "menemen food photography", p.gotQuery)

	svc.Resolve(context.Background(), "turkish food table", "")
	assert.Equal(t, "turkish food table", p.gotQuery)
}

func TestStrictNeedleStopWords(t *testing.T) {
	assert.Equal(t, "menemen", strictNeedle("Menemen Tarifi"))
	assert.Equal(t, "mercimek corbasi", strictNeedle("Mercimek Çorbası Yemeği"))
	// Stripping everything falls back to the unstripped folded term.
	assert.Equal(t, "yemek", strictNeedle("Yemek"))
}

func TestPlaceholderEncodesTitle(t *testing.T) {
	assert.Equal(t,
		"https://placehold.co/800x600/db4c3f/ffffff?text=Tarif",
		Placeholder(""))
}
