// Package serving exposes standard name tables over http: lookups are public, changes need a token.
package serving

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zefrenchwan/standardnames.git/storage"
	"github.com/zefrenchwan/standardnames.git/tables"
)

// RequestContextKey is key type for context keys when using specific info (such as current user)
type RequestContextKey string

// Store is the persistence the service relies on, storage.Dao in production
type Store interface {
	CheckUser(ctx context.Context, login, password string) (bool, error)
	FindSecretForActiveUser(ctx context.Context, login string) (string, error)
	UpsertUser(ctx context.Context, creator, login, password string) error
	SaveTable(ctx context.Context, creator, key string, table *tables.Table, baseURI string) error
	LoadTable(ctx context.Context, key string, options storage.ParseOptions) (*tables.Table, string, error)
	ListTables(ctx context.Context, titleFilter string) ([]storage.TableSummaryDTO, error)
	DeleteTable(ctx context.Context, key string) error
}

var _ Store = (*storage.Dao)(nil)

// ServiceOptions configures the service
type ServiceOptions struct {
	// StrictUnits turns unparseable units of uploaded tables into errors
	StrictUnits bool
	// Registerer receives the metrics, a dedicated registry if nil
	Registerer prometheus.Registerer
	// Gatherer exposes the metrics, the dedicated registry if nil
	Gatherer prometheus.Gatherer
}

// InitService returns a new valid servemux to launch
func InitService(dao Store, initialContext context.Context, logger *zap.SugaredLogger, options ServiceOptions) (*http.ServeMux, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	if options.Registerer == nil {
		registry := prometheus.NewRegistry()
		options.Registerer = registry
		options.Gatherer = registry
	}

	monitor, errMonitor := newRequestsMonitor(options.Registerer)
	if errMonitor != nil {
		return nil, errMonitor
	}

	loaded, errLoaded := NewTableRegistry(dao, logger, options.StrictUnits, options.Registerer)
	if errLoaded != nil {
		return nil, errLoaded
	}

	mux := http.NewServeMux()
	parameters := ServiceParameters{
		Dao:     dao,
		Ctx:     initialContext,
		Logger:  logger,
		Tables:  loaded,
		monitor: monitor,
	}

	// ADMIN PART
	AddGetServiceHandlerToMux(mux, "/status/", checkStatusHandler, parameters)
	AddPostServiceHandlerToMux(mux, "/token/", issueTokenHandler, parameters)
	AddAuthenticatedPostServiceHandlerToMux(mux, "/user/upsert/", upsertUserHandler, parameters)
	// TABLES OPERATIONS
	AddGetServiceHandlerToMux(mux, "/list/tables/", listTablesHandler, parameters)
	AddAuthenticatedPostServiceHandlerToMux(mux, "/upload/table/{format}/", uploadTableHandler, parameters)
	AddAuthenticatedDeleteServiceHandlerToMux(mux, "/delete/table/{tableId}/", deleteTableHandler, parameters)
	// NAMES OPERATIONS
	AddGetServiceHandlerToMux(mux, "/verify/{tableId}/{name}/", verifyNameHandler, parameters)
	AddGetServiceHandlerToMux(mux, "/names/{tableId}/{name}/", findStandardNameHandler, parameters)
	AddAuthenticatedPostServiceHandlerToMux(mux, "/names/{tableId}/", addStandardNameHandler, parameters)
	// EXPORTS
	AddGetServiceHandlerToMux(mux, "/markdown/{tableId}/", markdownHandler, parameters)
	AddGetServiceHandlerToMux(mux, "/export/{tableId}/{format}/", exportTableHandler, parameters)
	// mux is complete, all handlers are set
	mux.Handle("/metrics", promhttp.HandlerFor(options.Gatherer, promhttp.HandlerOpts{}))
	return mux, nil
}

// AddGetServiceHandlerToMux adds an handler to to the current mux for a GET
func AddGetServiceHandlerToMux(mux *http.ServeMux, urlPattern string, handler ServiceHandler, parameters ServiceParameters) {
	AddServiceHandlerToMux(mux, "GET", urlPattern, false, handler, parameters)
}

// AddPostServiceHandlerToMux adds an handler to to the current mux for a POST
func AddPostServiceHandlerToMux(mux *http.ServeMux, urlPattern string, handler ServiceHandler, parameters ServiceParameters) {
	AddServiceHandlerToMux(mux, "POST", urlPattern, false, handler, parameters)
}

// AddAuthenticatedPostServiceHandlerToMux adds an handler to to the current mux for a POST
func AddAuthenticatedPostServiceHandlerToMux(mux *http.ServeMux, urlPattern string, handler ServiceHandler, parameters ServiceParameters) {
	AddServiceHandlerToMux(mux, "POST", urlPattern, true, handler, parameters)
}

// AddAuthenticatedDeleteServiceHandlerToMux adds an handler to the current mux for a DELETE
func AddAuthenticatedDeleteServiceHandlerToMux(mux *http.ServeMux, urlPattern string, handler ServiceHandler, parameters ServiceParameters) {
	AddServiceHandlerToMux(mux, "DELETE", urlPattern, true, handler, parameters)
}

// AddServiceHandlerToMux adds an handler to current mux
func AddServiceHandlerToMux(mux *http.ServeMux, method string, urlPattern string, testAuth bool, handler ServiceHandler, parameters ServiceParameters) {
	handlerFunction := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if !strings.EqualFold(r.Method, method) {
			http.Error(w, "Expecting "+method, http.StatusBadRequest)
			parameters.monitor.observe(urlPattern, http.StatusBadRequest, start)
			return
		}

		// each request gets its own parameters, user included
		current := parameters
		current.Ctx = r.Context()
		if testAuth {
			if login, auth, err := validateAuthentication(current, r); err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				parameters.monitor.observe(urlPattern, http.StatusUnauthorized, start)
				return
			} else if !auth {
				http.Error(w, "should authenticate", http.StatusUnauthorized)
				parameters.monitor.observe(urlPattern, http.StatusUnauthorized, start)
				return
			} else {
				current.Ctx = context.WithValue(current.Ctx, RequestContextKey("user"), login)
			}
		}

		status := http.StatusOK
		if errHandler := handler(current, w, r); errHandler != nil {
			switch customError, ok := errHandler.(ServiceHttpError); ok {
			case true:
				status = customError.HttpCode()
				http.Error(w, customError.Error(), status)
			default:
				status = http.StatusInternalServerError
				http.Error(w, "Internal error: "+errHandler.Error(), status)
			}

			current.Logger.Infow("request failed", "method", method, "path", r.URL.Path, "status", status, "error", errHandler)
		}

		parameters.monitor.observe(urlPattern, status, start)
	}

	// register url matching
	mux.HandleFunc(urlPattern, handlerFunction)
	// deal with /value/ <=> /value
	size := len(urlPattern)
	if strings.HasSuffix(urlPattern, "/") {
		mux.HandleFunc(urlPattern[0:size-1], handlerFunction)
	} else {
		mux.HandleFunc(urlPattern+"/", handlerFunction)
	}
}

// ServiceParameters contains all parameters to use for a service
type ServiceParameters struct {
	Dao    Store
	Ctx    context.Context
	Logger *zap.SugaredLogger
	Tables *TableRegistry
	// monitor counts requests per pattern
	monitor *requestsMonitor
}

// ServiceHandler adds more parameters than usual handler function
type ServiceHandler func(wrapper ServiceParameters, w http.ResponseWriter, r *http.Request) error

// CurrentUser returns the current user if any, and a boolean to explicit if found
func (sp ServiceParameters) CurrentUser() (string, bool) {
	switch userValue := sp.Ctx.Value(RequestContextKey("user")); userValue {
	case nil:
		return "", false
	default:
		return userValue.(string), true
	}
}
