package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/geohoard/geohoard/economy"
	"github.com/ellavondegurechaff/geohoard/geohoard/entropy"
	"github.com/ellavondegurechaff/geohoard/geohoard/geo"
	"github.com/ellavondegurechaff/geohoard/geohoard/services"
	"github.com/ellavondegurechaff/geohoard/geohoard/world"
)

func newTestServer(names ...string) (*fiber.App, *world.Store) {
	features := make([]geo.Feature, len(names))
	for i, name := range names {
		f := geo.Feature{ID: geo.FeatureID(fmt.Sprintf("e%02d", i))}
		f.Properties.Name = name
		f.Geometry = &geo.Geometry{
			Type: "Polygon",
			Polygon: [][][]float64{
				{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
			},
		}
		features[i] = f
	}

	store := world.NewStore(features, economy.NewCalculator(economy.DefaultConfig()), nil, 10)
	srv := NewServer(store, services.NewSearchService(store), "test")
	return srv.App(), store
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(body) > 0 {
		_ = json.Unmarshal(body, &env)
	}
	return resp.StatusCode, env
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestServer("France")
	status, _ := doRequest(t, app, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, status)
}

func TestStateEndpoint(t *testing.T) {
	app, store := newTestServer("France", "Germany")
	store.Grant(250)

	status, env := doRequest(t, app, http.MethodGet, "/api/state")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var snap world.StateSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, int64(250), snap.Balance)
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, 0, snap.Owned)
}

func TestPurchaseEndpoint(t *testing.T) {
	app, store := newTestServer("France", "Germany")
	store.Grant(100000)
	store.RotateStock(entropy.New(1), 2)

	status, env := doRequest(t, app, http.MethodPost, "/api/purchase/e00")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var receipt world.PurchaseReceipt
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	assert.Equal(t, "e00", receipt.EntityID)
	assert.Equal(t, "France", receipt.Name)

	// Buying it again conflicts.
	status, env = doRequest(t, app, http.MethodPost, "/api/purchase/e00")
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ALREADY_OWNED", env.Error.Code)
}

func TestPurchaseRejections(t *testing.T) {
	app, store := newTestServer("France")

	status, env := doRequest(t, app, http.MethodPost, "/api/purchase/ghost")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNKNOWN_ENTITY", env.Error.Code)

	// Exists but was never stocked.
	status, env = doRequest(t, app, http.MethodPost, "/api/purchase/e00")
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_IN_STOCK", env.Error.Code)

	// Stocked but unaffordable.
	store.RotateStock(entropy.New(1), 1)
	status, env = doRequest(t, app, http.MethodPost, "/api/purchase/e00")
	assert.Equal(t, http.StatusPaymentRequired, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INSUFFICIENT_FUNDS", env.Error.Code)
}

func TestClickEndpoint(t *testing.T) {
	app, store := newTestServer("France")

	status, env := doRequest(t, app, http.MethodPost, "/api/click")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
	assert.Equal(t, int64(10), store.Balance())
}

func TestShopEndpointReflectsStock(t *testing.T) {
	app, store := newTestServer("France", "Germany", "Poland")

	status, env := doRequest(t, app, http.MethodGet, "/api/shop")
	require.Equal(t, http.StatusOK, status)
	var listing []world.EntitySnapshot
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Empty(t, listing)

	store.RotateStock(entropy.New(2), 3)

	_, env = doRequest(t, app, http.MethodGet, "/api/shop")
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.NotEmpty(t, listing)
	for _, e := range listing {
		assert.True(t, e.InStock)
		assert.False(t, e.Owned)
	}
}

func TestSearchEndpoint(t *testing.T) {
	app, _ := newTestServer("United Kingdom", "United States", "France")

	status, _ := doRequest(t, app, http.MethodGet, "/api/search")
	assert.Equal(t, http.StatusBadRequest, status)

	status, env := doRequest(t, app, http.MethodGet, "/api/search?q=united")
	require.Equal(t, http.StatusOK, status)

	var results []world.EntitySnapshot
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 2)

	status, _ = doRequest(t, app, http.MethodGet, "/api/search?q=united&limit=0")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestEventsEndpoint(t *testing.T) {
	app, store := newTestServer("France")
	store.RotateStock(entropy.New(1), 1)

	status, env := doRequest(t, app, http.MethodGet, "/api/events")
	require.Equal(t, http.StatusOK, status)

	var events []world.Event
	require.NoError(t, json.Unmarshal(env.Data, &events))
	assert.NotEmpty(t, events)
}

func TestSnapshotCache(t *testing.T) {
	cache := NewSnapshotCache()

	builds := 0
	build := func() any {
		builds++
		return "payload"
	}

	cache.Get("state", 1, build)
	cache.Get("state", 1, build)
	assert.Equal(t, 1, builds, "same revision must be served from cache")

	cache.Get("state", 2, build)
	assert.Equal(t, 2, builds, "revision change must rebuild")

	cache.Get("shop", 2, build)
	assert.Equal(t, 3, builds, "kinds are cached independently")
}
