package api

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/harrylevesque/tododemo/internal/auth"
	"github.com/harrylevesque/tododemo/internal/metrics"
	"github.com/rs/zerolog"
)

// Pages lists the guarded page routes and the file each one serves.
var Pages = map[string]string{
	"/":      "index.html",
	"/todo":  "todo.html",
	"/cart":  "cart.html",
	"/users": "users.html",
}

// RouterOptions collects what NewRouter wires together. Metrics and Guard
// may be nil.
type RouterOptions struct {
	Todos     *TodoHandler
	Mock      *MockHandler
	Guard     *auth.Guard
	Metrics   *metrics.Metrics
	StaticDir string
	Logger    zerolog.Logger
}

func NewRouter(opts RouterOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(Instrument(opts.Logger, opts.Metrics))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler(opts.Logger)).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/todo", opts.Todos.Fetch).Methods("GET")
	api.HandleFunc("/todo", opts.Todos.Create).Methods("POST")
	api.HandleFunc("/todo", opts.Todos.Delete).Methods("DELETE")
	api.HandleFunc("/todo", opts.Todos.Update).Methods("PUT")
	api.HandleFunc("/todo/{id}", opts.Todos.Get).Methods("GET")
	api.HandleFunc("/login", opts.Mock.Login).Methods("POST")
	if opts.Mock.bindSession {
		api.HandleFunc("/logout", opts.Mock.Logout).Methods("POST")
	}
	api.HandleFunc("/users", opts.Mock.Users).Methods("GET")
	api.HandleFunc("/users/{id}", opts.Mock.User).Methods("GET")

	if opts.StaticDir == "" {
		return r
	}
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(filepath.Join(opts.StaticDir, "static")))),
	).Methods("GET")
	r.HandleFunc(auth.LoginPath, serveFile(filepath.Join(opts.StaticDir, "login.html"))).Methods("GET")

	// only claim page paths so method mismatches elsewhere stay 405
	pages := r.MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
		_, ok := Pages[req.URL.Path]
		return ok
	}).Subrouter()
	if opts.Guard != nil {
		pages.Use(opts.Guard.Middleware)
	}
	for path, file := range Pages {
		pages.HandleFunc(path, serveFile(filepath.Join(opts.StaticDir, file))).Methods("GET")
	}
	return r
}

func serveFile(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}
