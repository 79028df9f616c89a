package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariften-backend/internal/core/store"
	"tariften-backend/internal/pkg/common"
)

func newUpdateRouter(t *testing.T, ms store.ContentStore, identity *common.Identity) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(nil, ms)
	r.PUT("/menus/:id", func(c *gin.Context) {
		if identity != nil {
			c.Set("identity", *identity)
		}
		h.Update(c)
	})
	return r
}

func seedMenu(t *testing.T, ms store.ContentStore) *store.Menu {
	t.Helper()
	m := &store.Menu{
		Title:      "Pazar Kahvaltısı",
		Concept:    "aile kahvaltısı",
		GuestCount: 4,
		EventType:  "breakfast",
		AuthorID:   "user-1",
		Sections: []store.Section{
			{Type: "pastry", Title: "Hamur İşleri", RecipeIDs: []string{"r1"}},
		},
	}
	require.NoError(t, ms.CreateMenu(context.Background(), m))
	return m
}

func putMenu(r *gin.Engine, id string, body UpdateRequest) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, "/menus/"+id, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateMenuByAuthor(t *testing.T) {
	ms := store.NewMemoryStore()
	m := seedMenu(t, ms)
	r := newUpdateRouter(t, ms, &common.Identity{UserID: "user-1"})

	w := putMenu(r, m.ID, UpdateRequest{
		Title: "Bayram Kahvaltısı", Concept: m.Concept, GuestCount: 6,
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := ms.GetMenuByID(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Bayram Kahvaltısı", stored.Title)
	assert.Equal(t, 6, stored.GuestCount)
	// Identity, slug and authorship survive the update.
	assert.Equal(t, m.Slug, stored.Slug)
	assert.Equal(t, "user-1", stored.AuthorID)
	assert.Equal(t, "breakfast", stored.EventType)
}

func TestUpdateMenuRejectsStranger(t *testing.T) {
	ms := store.NewMemoryStore()
	m := seedMenu(t, ms)
	r := newUpdateRouter(t, ms, &common.Identity{UserID: "user-2"})

	w := putMenu(r, m.ID, UpdateRequest{Title: "Başkasının Menüsü"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	stored, err := ms.GetMenuByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pazar Kahvaltısı", stored.Title)
}

func TestUpdateMenuAllowsAdmin(t *testing.T) {
	ms := store.NewMemoryStore()
	m := seedMenu(t, ms)
	r := newUpdateRouter(t, ms, &common.Identity{UserID: "admin-1", Role: "admin"})

	w := putMenu(r, m.ID, UpdateRequest{Title: "Düzenlenmiş Menü"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateMenuRequiresIdentity(t *testing.T) {
	ms := store.NewMemoryStore()
	m := seedMenu(t, ms)
	r := newUpdateRouter(t, ms, nil)

	w := putMenu(r, m.ID, UpdateRequest{Title: "Kimliksiz"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateMenuNotFound(t *testing.T) {
	ms := store.NewMemoryStore()
	r := newUpdateRouter(t, ms, &common.Identity{UserID: "user-1"})

	w := putMenu(r, "yok-boyle-menu", UpdateRequest{Title: "Hayalet"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
