// ABOUTME: Read-only HTTP service exposing a populated Config to the admin UI.
// ABOUTME: Responses are encoded once at construction, so later config mutation is not visible.

package manifest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/2389/pocketms/core"
	apierrors "github.com/2389/pocketms/internal/errors"
	"github.com/2389/pocketms/internal/logging"
)

type pageBodies struct {
	page    []byte
	actions map[core.Action][]byte
}

// Handlers serves the manifest routes.
type Handlers struct {
	config []byte
	nav    []byte
	pages  map[string]*pageBodies
}

// NewHandlers snapshots cfg. With duplicate resources the first page wins,
// matching core.Config.Page.
func NewHandlers(cfg *core.Config) (*Handlers, error) {
	h := &Handlers{pages: make(map[string]*pageBodies)}

	var err error
	if h.config, err = json.Marshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if h.nav, err = json.Marshal(navItems(cfg)); err != nil {
		return nil, fmt.Errorf("failed to encode navigation: %w", err)
	}

	for _, p := range cfg.Pages {
		if p == nil {
			continue
		}
		if _, seen := h.pages[p.ResourceName]; seen {
			continue
		}
		bodies := &pageBodies{actions: make(map[core.Action][]byte)}
		if bodies.page, err = json.Marshal(p); err != nil {
			return nil, fmt.Errorf("failed to encode page %q: %w", p.ResourceName, err)
		}
		for _, a := range core.Actions() {
			if bodies.actions[a], err = json.Marshal(actionView(p, a)); err != nil {
				return nil, fmt.Errorf("failed to encode %s view of %q: %w", a, p.ResourceName, err)
			}
		}
		h.pages[p.ResourceName] = bodies
	}
	return h, nil
}

// RegisterRoutes registers the manifest routes on r.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Healthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/config", h.Config)
		r.Get("/pages", h.Pages)
		r.Get("/pages/{resource}", h.Page)
		r.Get("/pages/{resource}/{action}", h.Action)
	})
}

// NewRouter returns a router serving cfg with request logging. rec may be nil.
func NewRouter(cfg *core.Config, logger *slog.Logger, rec logging.Recorder) (http.Handler, error) {
	h, err := NewHandlers(cfg)
	if err != nil {
		return nil, err
	}

	r := newBaseRouter(logger, rec)
	h.RegisterRoutes(r)
	return r, nil
}

// newBaseRouter mounts middleware and error handlers. The access log wraps
// the recoverer so a panicking handler is still logged as a 500.
func newBaseRouter(logger *slog.Logger, rec logging.Recorder) *chi.Mux {
	r := chi.NewRouter()
	r.Use(logging.Middleware(logger, rec))
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, http.StatusNotFound, apierrors.ErrNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, http.StatusMethodNotAllowed, apierrors.ErrMethodNotAllowed, "the manifest is read only")
	})
	return r
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, []byte(`{"ok":true}`))
}

// Config serves the whole configuration.
func (h *Handlers) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.config)
}

// Pages serves the navigation list.
func (h *Handlers) Pages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.nav)
}

// Page serves one page configuration as registered.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	bodies, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, bodies.page)
}

// Action serves the effective configuration of one page action.
func (h *Handlers) Action(w http.ResponseWriter, r *http.Request) {
	bodies, ok := h.lookup(w, r)
	if !ok {
		return
	}

	action := chi.URLParam(r, "action")
	body, ok := bodies.actions[core.Action(action)]
	if !ok {
		apierrors.WriteError(w, http.StatusNotFound, apierrors.ErrUnknownAction,
			fmt.Sprintf("unknown action %q (want list, create, update or delete)", action))
		return
	}
	writeJSON(w, body)
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (*pageBodies, bool) {
	resource := chi.URLParam(r, "resource")
	bodies, ok := h.pages[resource]
	if !ok {
		apierrors.WriteError(w, http.StatusNotFound, apierrors.ErrUnknownResource,
			fmt.Sprintf("no page for resource %q", resource))
		return nil, false
	}
	return bodies, true
}

func writeJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
