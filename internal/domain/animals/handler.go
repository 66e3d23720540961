package animals

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shelter-dashboard/internal/middleware"
	"shelter-dashboard/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc))
		ar.Post("/", createAnimalHandler(svc))
	})
}

// createAnimalRequest valida los campos conocidos del body.
// El documento se guarda completo (campos extra incluidos).
type createAnimalRequest struct {
	AnimalType    *string  `json:"animal_type" validate:"omitempty,max=100"`
	Breed         *string  `json:"breed" validate:"omitempty,min=1,max=200"`
	Name          *string  `json:"name" validate:"omitempty,max=200"`
	Sex           *string  `json:"sex_upon_outcome" validate:"omitempty,max=100"`
	AgeWeeks      *float64 `json:"age_upon_outcome_in_weeks" validate:"omitempty,gte=0"`
	AgeDescriptor *string  `json:"age_upon_outcome" validate:"omitempty,max=100"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,longitude"`
}

type statusResponse struct {
	Status string `json:"status" example:"success"`
	ID     string `json:"id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error" example:"Unauthorized"`
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Devuelve los records que cumplen los filtros. `age_upon_outcome_in_weeks=N` filtra edad < N (no igualdad). Otros parámetros `campo=valor` son igualdad. Operadores explícitos: `campo[in]`, `campo[regex]`, `campo[lt]`, `campo[gte]`, `campo[lte]`, `campo[eq]`.
// @Tags animals
// @Produce json
// @Param age_upon_outcome_in_weeks query int false "Cota superior exclusiva de edad en semanas"
// @Success 200 {array} object
// @Failure 400 {object} errorResponse "query inválida"
// @Failure 500 {object} errorResponse "store no disponible"
// @Router /api/animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := ParseParams(r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		items, err := svc.List(r.Context(), q)
		if err != nil {
			if errors.Is(err, ErrInvalidQuery) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if items == nil {
			items = []Record{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// createAnimalHandler godoc
// @Summary Crear animal
// @Description Inserta un record nuevo. Requiere role `admin` en la sesión. En dev la sesión estática se puede pisar con `X-Debug-Role`.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-Role header string false "Solo en modo dev, role del caller"
// @Param payload body object true "Campos del record"
// @Success 200 {object} statusResponse
// @Failure 400 {object} errorResponse "invalid json / validación"
// @Failure 403 {object} errorResponse "Unauthorized"
// @Failure 500 {object} errorResponse "store no disponible"
// @Router /api/animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.GetSession(r.Context())
		if !ok || !session.IsAdmin() {
			writeError(w, http.StatusForbidden, "Unauthorized")
			return
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil || rec == nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		// Segunda pasada tipada solo para validar campos conocidos.
		var req createAnimalRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid field type")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		id, err := svc.Create(r.Context(), session, rec)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnauthorized):
				writeError(w, http.StatusForbidden, "Unauthorized")
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, statusResponse{Status: "success", ID: id})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
