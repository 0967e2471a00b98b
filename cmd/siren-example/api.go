package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	siren "github.com/ccbrown/siren-fu"
	"github.com/ccbrown/siren-fu/pagination"
	"github.com/ccbrown/siren-fu/sirenhttp"
	"github.com/ccbrown/siren-fu/sirenws"
)

const exampleOrderNumber = 42

var errNoSuchOrder = errors.New("no such order")

// API serves the order collection as Siren documents.
type API struct {
	Store    *Store
	BaseURL  string
	PageSize int
	Logger   logrus.FieldLogger

	streamer *sirenws.Streamer
	requests *prometheus.CounterVec
	registry *prometheus.Registry
}

func NewAPI(store *Store, baseURL string, pageSize int, logger logrus.FieldLogger) *API {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	api := &API{
		Store:    store,
		BaseURL:  baseURL,
		PageSize: pageSize,
		Logger:   logger,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "siren_example",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route, method, and status code",
		}, []string{"route", "method", "code"}),
		registry: prometheus.NewRegistry(),
	}
	api.registry.MustRegister(api.requests)
	api.streamer = &sirenws.Streamer{
		Logger:    logger,
		Subscribe: api.subscribe,
	}
	return api
}

// Handler returns the API's routes wrapped with CORS and access logging.
func (a *API) Handler(accessLog func(http.Handler) http.Handler) http.Handler {
	router := mux.NewRouter()
	a.route(router, "/", a.serveExample).Methods("GET")
	a.route(router, "/orders", a.serveOrders).Methods("GET")
	a.route(router, "/orders/{number:[0-9]+}", a.serveOrder).Methods("GET")
	a.route(router, "/orders/{number:[0-9]+}/items", a.serveAddItem).Methods("POST")
	router.Handle("/orders/{number:[0-9]+}/events", a.instrument("/orders/{number:[0-9]+}/events", a.streamer)).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	var h http.Handler = router
	if accessLog != nil {
		h = accessLog(h)
	}
	return cors(h)
}

// Close ends all event streams.
func (a *API) Close() {
	a.streamer.Close()
}

func (a *API) route(router *mux.Router, path string, f func(r *http.Request) siren.ResponseEncoder) *mux.Route {
	return router.Handle(path, a.instrument(path, &sirenhttp.Handler{
		Logger:  a.Logger,
		Resolve: f,
	}))
}

func (a *API) instrument(route string, h http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(a.requests.MustCurryWith(prometheus.Labels{"route": route}), h)
}

func orderNumber(r *http.Request) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)["number"])
	return n, err == nil
}

func (a *API) serveExample(r *http.Request) siren.ResponseEncoder {
	order, ok := a.Store.Order(exampleOrderNumber)
	if !ok {
		return nil
	}
	return a.OrderDocument(order).Response().WithHeader("Cache-Control", "public, max-age=3600")
}

func (a *API) serveOrder(r *http.Request) siren.ResponseEncoder {
	n, ok := orderNumber(r)
	if !ok {
		return nil
	}
	order, ok := a.Store.Order(n)
	if !ok {
		return nil
	}
	return a.OrderDocument(order)
}

func (a *API) serveOrders(r *http.Request) siren.ResponseEncoder {
	q := r.URL.Query()

	limit := a.PageSize
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return errorResponse(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	var after, before *OrderCursor
	if s := q.Get("after"); s != "" {
		c, err := pagination.DeserializeCursor[OrderCursor](s)
		if err != nil {
			return errorResponse(http.StatusBadRequest, "invalid after cursor")
		}
		after = c
	}
	if s := q.Get("before"); s != "" {
		c, err := pagination.DeserializeCursor[OrderCursor](s)
		if err != nil {
			return errorResponse(http.StatusBadRequest, "invalid before cursor")
		}
		before = c
	}

	// paging backwards from a cursor takes the orders just before it
	if before != nil && after == nil {
		limit = -limit
	}

	orders, info := a.Store.Orders(after, before, limit)
	links, err := info.Links(pagination.LinkConfig{
		Href: a.BaseURL + r.URL.RequestURI(),
	})
	if err != nil {
		a.Logger.WithError(err).Error("unable to build pagination links")
		return errorResponse(http.StatusInternalServerError, "internal server error")
	}
	return a.OrdersDocument(orders, links)
}

func (a *API) serveAddItem(r *http.Request) siren.ResponseEncoder {
	n, ok := orderNumber(r)
	if !ok {
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return errorResponse(http.StatusBadRequest, "invalid form")
	}
	if r.PostForm.Get("productCode") == "" {
		return errorResponse(http.StatusBadRequest, "productCode is required")
	}
	quantity, err := strconv.Atoi(r.PostForm.Get("quantity"))
	if err != nil || quantity < 1 {
		return errorResponse(http.StatusBadRequest, "quantity must be a positive integer")
	}
	order, ok := a.Store.AddItems(n, quantity)
	if !ok {
		return nil
	}
	a.Logger.WithFields(logrus.Fields{
		"order":    n,
		"product":  r.PostForm.Get("productCode"),
		"quantity": quantity,
	}).Info("items added")
	return a.OrderDocument(order).Response().
		WithStatusCode(http.StatusCreated).
		WithHeader("Location", a.orderURL(n))
}

func (a *API) subscribe(ctx context.Context, r *http.Request) (<-chan siren.Marshaler, error) {
	n, ok := orderNumber(r)
	if !ok {
		return nil, errNoSuchOrder
	}
	orders, ok := a.Store.Subscribe(ctx, n)
	if !ok {
		return nil, errNoSuchOrder
	}
	documents := make(chan siren.Marshaler)
	go func() {
		defer close(documents)
		for order := range orders {
			select {
			case documents <- a.OrderDocument(order):
			case <-ctx.Done():
				return
			}
		}
	}()
	return documents, nil
}
