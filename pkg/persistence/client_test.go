package persistence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RoundTrip(t *testing.T) {
	id := uuid.New()
	var saved model.CVDocument
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/cv", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id.String()})
	})
	mux.HandleFunc("/api/v1/cv/"+id.String(), func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
			_ = json.NewEncoder(w).Encode(map[string]any{"id": id})
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "document": saved})
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok")
	ctx := context.Background()

	doc := model.NewCVDocument()
	doc.PersonalInfo.FullName = "Ada Lovelace"
	got, err := c.Create(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	doc.TemplateID = 3
	require.NoError(t, c.Save(ctx, id, doc))
	loaded, err := c.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", loaded.PersonalInfo.FullName)
	assert.Equal(t, 3, loaded.TemplateID)
}

func TestClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"database unavailable"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = c.Save(context.Background(), uuid.New(), model.NewCVDocument())
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorContains(t, err, "database unavailable")

	c = NewClient("http://127.0.0.1:1", "")
	_, err = c.Create(context.Background(), model.NewCVDocument())
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
