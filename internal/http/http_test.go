package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/config"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestService spins up the full router against an in-memory database.
// No token is sent in tests, so requests resolve to the development user.
func newTestService(t *testing.T) (*APIService, *appcontext.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	ctx := &appcontext.Context{
		DB:     db,
		Logger: zap.NewNop(),
	}
	return NewHTTPService(ctx), ctx
}

func doRequest(t *testing.T, service *APIService, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	service.Engine().ServeHTTP(recorder, req)
	return recorder
}

func decodeJSON(t *testing.T, recorder *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
}

func createTestProduct(t *testing.T, service *APIService, name string, tags []string) entity.DataProduct {
	t.Helper()

	recorder := doRequest(t, service, "POST", "/api/data-products", gin.H{
		"name":   name,
		"domain": "commerce",
		"tags":   tags,
	})
	require.Equal(t, 201, recorder.Code, recorder.Body.String())

	var product entity.DataProduct
	decodeJSON(t, recorder, &product)
	return product
}
