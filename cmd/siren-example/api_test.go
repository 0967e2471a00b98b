package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siren "github.com/ccbrown/siren-fu"
)

const testBaseURL = "http://api.x.io"

func newTestAPI() *API {
	logger, _ := test.NewNullLogger()
	return NewAPI(NewStore(100), testBaseURL, 2, logger)
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

type collectionResponse struct {
	Properties CollectionProperties `json:"properties"`
	Entities   []struct {
		Rel        []string        `json:"rel"`
		Properties OrderProperties `json:"properties"`
	} `json:"entities"`
	Links []struct {
		Rel  []string `json:"rel"`
		Href string   `json:"href"`
	} `json:"links"`
}

func (c *collectionResponse) numbers() []int {
	var ret []int
	for _, e := range c.Entities {
		ret = append(ret, e.Properties.OrderNumber)
	}
	return ret
}

func (c *collectionResponse) link(rel string) string {
	for _, l := range c.Links {
		if len(l.Rel) == 1 && l.Rel[0] == rel {
			return strings.TrimPrefix(l.Href, testBaseURL)
		}
	}
	return ""
}

func TestAPI_Example(t *testing.T) {
	api := newTestAPI()
	w := serve(api.Handler(nil), httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, siren.MediaType, w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{
		"class": ["order"],
		"properties": {"orderNumber": 42, "itemCount": 3, "status": "pending"},
		"entities": [
			{
				"class": ["items", "collection"],
				"rel": ["http://x.io/rels/order-items"],
				"href": "http://api.x.io/orders/42/items"
			},
			{
				"class": ["info", "customer"],
				"rel": ["http://x.io/rels/customer"],
				"properties": {"customerId": "pj123", "name": "Peter Joseph"},
				"links": [{"rel": ["self"], "href": "http://api.x.io/customers/pj123"}]
			}
		],
		"actions": [
			{
				"name": "add-item",
				"title": "Add Item",
				"method": "POST",
				"href": "http://api.x.io/orders/42/items",
				"type": "application/x-www-form-urlencoded",
				"fields": [
					{"name": "orderNumber", "type": "hidden", "value": "42"},
					{"name": "productCode", "type": "text"},
					{"name": "quantity", "type": "number"}
				]
			}
		],
		"links": [
			{"rel": ["self"], "href": "http://api.x.io/orders/42"},
			{"rel": ["previous"], "href": "http://api.x.io/orders/41"},
			{"rel": ["next"], "href": "http://api.x.io/orders/43"}
		]
	}`, w.Body.String())
}

func TestAPI_Order(t *testing.T) {
	h := newTestAPI().Handler(nil)

	w := serve(h, httptest.NewRequest("GET", "/orders/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Cache-Control"))

	var doc collectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "/orders/1", doc.link("self"))
	assert.Empty(t, doc.link("previous"))
	assert.Equal(t, "/orders/2", doc.link("next"))

	w = serve(h, httptest.NewRequest("GET", "/orders/1000", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_Orders(t *testing.T) {
	h := newTestAPI().Handler(nil)

	get := func(path string) *collectionResponse {
		w := serve(h, httptest.NewRequest("GET", path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, siren.MediaType, w.Header().Get("Content-Type"))
		var ret collectionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ret))
		return &ret
	}

	page := get("/orders")
	assert.Equal(t, 2, page.Properties.Count)
	assert.Equal(t, []int{1, 2}, page.numbers())
	assert.Equal(t, []string{"item"}, page.Entities[0].Rel)
	assert.Equal(t, "/orders", page.link("self"))
	assert.Empty(t, page.link("first"))
	assert.Empty(t, page.link("prev"))
	require.NotEmpty(t, page.link("next"))

	page = get(page.link("next"))
	assert.Equal(t, []int{3, 4}, page.numbers())
	assert.Equal(t, "/orders", page.link("first"))
	require.NotEmpty(t, page.link("prev"))
	require.NotEmpty(t, page.link("next"))

	prev := get(page.link("prev"))
	assert.Equal(t, []int{1, 2}, prev.numbers())
	assert.Empty(t, prev.link("prev"))

	page = get("/orders?limit=5")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, page.numbers())
	next, err := url.Parse(page.link("next"))
	require.NoError(t, err)
	assert.Equal(t, "5", next.Query().Get("limit"))

	for i := 0; i < 19; i++ {
		page = get(page.link("next"))
	}
	assert.Equal(t, []int{96, 97, 98, 99, 100}, page.numbers())
	assert.Empty(t, page.link("next"))

	// query separators in page links are written as-is
	w := serve(h, httptest.NewRequest("GET", "/orders?limit=5", nil))
	assert.Contains(t, w.Body.String(), `&limit=5"`)
	assert.NotContains(t, w.Body.String(), `\u0026`)
}

func TestAPI_Orders_BadRequest(t *testing.T) {
	h := newTestAPI().Handler(nil)

	for _, path := range []string{
		"/orders?limit=0",
		"/orders?limit=x",
		"/orders?after=!!!",
		"/orders?before=AA",
	} {
		w := serve(h, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, siren.MediaType, w.Header().Get("Content-Type"), path)

		var doc struct {
			Class      []string        `json:"class"`
			Properties ErrorProperties `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc), path)
		assert.Equal(t, []string{"error"}, doc.Class)
		assert.NotEmpty(t, doc.Properties.Message)
	}
}

func TestAPI_AddItem(t *testing.T) {
	h := newTestAPI().Handler(nil)

	post := func(path string, form url.Values) *httptest.ResponseRecorder {
		r := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return serve(h, r)
	}

	w := post("/orders/42/items", url.Values{"orderNumber": {"42"}, "productCode": {"ABC"}, "quantity": {"2"}})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "http://api.x.io/orders/42", w.Header().Get("Location"))

	var doc struct {
		Properties OrderProperties `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, 5, doc.Properties.ItemCount)

	assert.Equal(t, http.StatusBadRequest, post("/orders/42/items", url.Values{"productCode": {"ABC"}}).Code)
	assert.Equal(t, http.StatusBadRequest, post("/orders/42/items", url.Values{"quantity": {"1"}}).Code)
	assert.Equal(t, http.StatusNotFound, post("/orders/1000/items", url.Values{"productCode": {"ABC"}, "quantity": {"1"}}).Code)
}

func TestAPI_Events(t *testing.T) {
	api := newTestAPI()
	ts := httptest.NewServer(api.Handler(nil))
	defer ts.Close()

	dialer := &websocket.Dialer{
		HandshakeTimeout: time.Second,
	}

	_, resp, err := dialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/orders/1000/events", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	conn, _, err := dialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/orders/42/events", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	readOrder := func() OrderProperties {
		_, p, err := conn.ReadMessage()
		require.NoError(t, err)
		var doc struct {
			Class      []string        `json:"class"`
			Properties OrderProperties `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(p, &doc))
		assert.Equal(t, []string{"order"}, doc.Class)
		return doc.Properties
	}

	assert.Equal(t, 3, readOrder().ItemCount)

	postResp, err := http.PostForm(ts.URL+"/orders/42/items", url.Values{"productCode": {"ABC"}, "quantity": {"4"}})
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, postResp.Body)
	postResp.Body.Close()
	assert.Equal(t, http.StatusCreated, postResp.StatusCode)

	assert.Equal(t, 7, readOrder().ItemCount)

	api.Close()
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
}

func TestAPI_CORS(t *testing.T) {
	h := newTestAPI().Handler(nil)

	r := httptest.NewRequest("GET", "/orders/42", nil)
	r.Header.Set("Origin", "http://example.com")
	w := serve(h, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPI_Metrics(t *testing.T) {
	h := newTestAPI().Handler(nil)

	serve(h, httptest.NewRequest("GET", "/orders/42", nil))
	serve(h, httptest.NewRequest("GET", "/orders/1000", nil))

	w := serve(h, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "siren_example_http_requests_total")
	assert.Contains(t, body, `code="200"`)
	assert.Contains(t, body, `code="404"`)
	assert.Contains(t, body, `route="/orders/{number:[0-9]+}"`)
}
