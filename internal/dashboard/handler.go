package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"shelter-dashboard/internal/domain/rescue"
	"shelter-dashboard/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, sessions *Sessions, page *Page, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "dashboard.http"})

	r.Get("/", dashboardPageHandler(sessions, page, log))
	r.Get("/dashboard/state", dashboardStateHandler(sessions, log))
}

type errorResponse struct {
	Error string `json:"error"`
}

// dashboardPageHandler godoc
// @Summary Dashboard
// @Description Página HTML con dropdown de rescate, tabla paginada, torta de razas y mapa.
// @Tags dashboard
// @Produce html
// @Param filter query string false "Tipo de rescate" Enums(All, Water Rescue, Mountain or Wilderness Rescue, Disaster or Individual Tracking)
// @Param sort query string false "Columna de orden"
// @Param desc query bool false "Orden descendente"
// @Param page query int false "Página (desde 0)"
// @Param row query int false "Fila seleccionada de la página"
// @Success 200 {string} string "html"
// @Failure 400 {string} string "parámetro inválido"
// @Router / [get]
func dashboardPageHandler(sessions *Sessions, page *Page, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.FromRequest(w, r)
		if err := applyParams(r.Context(), sess, r.URL.Query()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Render(w, sess.Panels.Current()); err != nil {
			log.Error("render failed", map[string]any{"err": err, "session": sess.ID})
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

// dashboardStateHandler godoc
// @Summary Estado del dashboard
// @Description Mismos parámetros que la página; devuelve los tres paneles como JSON.
// @Tags dashboard
// @Produce json
// @Param filter query string false "Tipo de rescate"
// @Param sort query string false "Columna de orden"
// @Param desc query bool false "Orden descendente"
// @Param page query int false "Página (desde 0)"
// @Param row query int false "Fila seleccionada de la página"
// @Success 200 {object} Rendered
// @Failure 400 {object} errorResponse
// @Router /dashboard/state [get]
func dashboardStateHandler(sessions *Sessions, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessions.FromRequest(w, r)
		if err := applyParams(r.Context(), sess, r.URL.Query()); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		state := sess.Panels.Current()
		if state.Error != "" {
			log.Debug("serving placeholders", map[string]any{"session": sess.ID, "err": state.Error})
		}
		writeJSON(w, http.StatusOK, state)
	}
}

// applyParams aplica en orden: filter, sort/desc, page, row.
// Cada request vuelve a pedir datos; solo un filtro desconocido corta con error.
func applyParams(ctx context.Context, sess *Session, q url.Values) error {
	if err := sess.Load(ctx, q.Get("filter")); errors.Is(err, rescue.ErrUnknownFilter) {
		return err
	}

	if _, ok := q["sort"]; ok {
		desc, err := parseBool(q.Get("desc"))
		if err != nil {
			return fmt.Errorf("invalid desc: %w", err)
		}
		sess.View.SortBy(q.Get("sort"), desc)
	}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid page %q", raw)
		}
		sess.View.SetPage(n)
	}

	if raw := q.Get("row"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid row %q", raw)
		}
		sess.View.SelectRow(n)
	}
	return nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
