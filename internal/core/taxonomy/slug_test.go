package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "turk mutfagi", Fold("Türk Mutfağı"))
	assert.Equal(t, "ogle yemegi", Fold("Öğle Yemeği"))
	assert.Equal(t, "sef", Fold("Şef"))
	assert.Equal(t, "italyan", Fold("İtalyan"))
	assert.Equal(t, "kahvalti", Fold("KAHVALTI"))
	assert.Equal(t, "menemen", Fold("menemen"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "turk-mutfagi", Slugify("Türk Mutfağı"))
	assert.Equal(t, "dunya-mutfagi", Slugify("Dünya Mutfağı"))
	assert.Equal(t, "mercimek-corbasi", Slugify("Mercimek Çorbası"))
	assert.Equal(t, "glutensiz", Slugify("Glutensiz"))
	assert.Equal(t, "a-b-c", Slugify("  a  / b & c  "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestSlugifyIdempotent(t *testing.T) {
	for _, name := range []string{"Türk Mutfağı", "Akşam Yemeği", "Şef"} {
		once := Slugify(name)
		assert.Equal(t, once, Slugify(once))
	}
}
