package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"title":"Menemen"}`, `{"title":"Menemen"}`},
		{"fenced", "```json\n{\"title\":\"Menemen\"}\n```", `{"title":"Menemen"}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding prose", "İşte tarifiniz:\n{\"a\":1}\nAfiyet olsun!", `{"a":1}`},
		{"no braces", "tarif bulunamadı", "tarif bulunamadı"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONObject(tt.raw))
		})
	}
}

func TestQuoteJSONKeys(t *testing.T) {
	raw := `{title: "Menemen", steps: ["a"], seo: {focus_keywords: []}}`
	fixed := QuoteJSONKeys(raw)

	var out map[string]interface{}
	require.NoError(t, ParseJSON(fixed, &out))
	assert.Equal(t, "Menemen", out["title"])
}

func TestQuoteJSONKeysLeavesStringsAlone(t *testing.T) {
	raw := `{"note": "saat 12:30 gibi servis edin"}`
	assert.Equal(t, raw, QuoteJSONKeys(raw))
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var out map[string]interface{}
	assert.Error(t, ParseJSON(`{"a":1} {"b":2}`, &out))
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"number", `{"v": 25}`, 25},
		{"numeric string", `{"v": "25"}`, 25},
		{"unit suffix", `{"v": "25 dk"}`, 25},
		{"null", `{"v": null}`, 0},
		{"empty string", `{"v": ""}`, 0},
		{"garbage", `{"v": "yarım saat"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				V FlexInt `json:"v"`
			}
			require.NoError(t, ParseJSON(tt.raw, &out))
			assert.Equal(t, tt.want, out.V.Int())
		})
	}
}
