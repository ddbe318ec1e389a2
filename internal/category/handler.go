package category

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	errors "github.com/frahmantamala/category-management/internal"
	"github.com/frahmantamala/category-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateCategoryDTO) (*Category, error)
	List(ctx context.Context, params ListParams) (*CategoryPage, error)
	Update(ctx context.Context, id int64, dto UpdateCategoryDTO) (*Category, error)
	Delete(ctx context.Context, id int64) (*Category, error)
}

// Handler is the thin mapping layer between transport and the lifecycle
// service: input coercion, delegation, and outcome-to-status mapping. It is
// the only place that knows which failure kind maps to which HTTP status.
type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

const msgInvalidID = "ID must be a number"

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateCategory: invalid request body", "error", err)
		h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Validation failed",
			"details": []string{decodeErrorMessage(err)},
		})
		return
	}

	if verr := dto.Validate(); verr != nil {
		h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   verr.Message,
			"details": validationMessages(verr),
		})
		return
	}

	ctx, cancel := errors.WithTimeout(r.Context(), 0)
	defer cancel()

	result, err := h.Service.Create(ctx, dto)
	if err != nil {
		h.Logger.Error("CreateCategory: service error", "error", err, "name", dto.Name)
		// create reports every failure, uniqueness included, as a 400 with
		// the raw message
		h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:    parsePositiveInt(r.URL.Query().Get("page"), DefaultPage),
		PerPage: parsePositiveInt(r.URL.Query().Get("per_page"), DefaultPerPage),
		Name:    r.URL.Query().Get("name"),
	}
	if userIDStr := r.URL.Query().Get("user_id"); userIDStr != "" {
		if userID, err := strconv.ParseInt(userIDStr, 10, 64); err == nil && userID > 0 {
			params.UserID = userID
		}
	}

	ctx, cancel := errors.WithTimeout(r.Context(), 0)
	defer cancel()

	page, err := h.Service.List(ctx, params)
	if err != nil {
		h.Logger.Error("ListCategories: service error", "error", err)
		h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Data: page.Items,
		Meta: page.Meta,
	})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.Logger.Error("UpdateCategory: invalid category ID", "id", chi.URLParam(r, "id"))
		h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"error": msgInvalidID})
		return
	}

	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCategory: invalid request body", "error", err)
		h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Validation failed",
			"details": []string{decodeErrorMessage(err)},
		})
		return
	}

	if verr := dto.Validate(); verr != nil {
		h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   verr.Message,
			"details": validationMessages(verr),
		})
		return
	}

	ctx, cancel := errors.WithTimeout(r.Context(), 0)
	defer cancel()

	result, err := h.Service.Update(ctx, id, dto)
	if err != nil {
		h.Logger.Error("UpdateCategory: service error", "error", err, "category_id", id)
		switch {
		case stderrors.Is(err, errors.ErrCategoryNotFound):
			h.WriteJSON(w, http.StatusNotFound, map[string]interface{}{"error": err.Error()})
		case stderrors.Is(err, errors.ErrCategoryAlreadyExists):
			h.WriteJSON(w, http.StatusConflict, map[string]interface{}{"error": err.Error()})
		default:
			h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, MutationResponse{
		Message: "Category updated successfully",
		Result:  result,
	})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.Logger.Error("DeleteCategory: invalid category ID", "id", chi.URLParam(r, "id"))
		h.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"message": msgInvalidID})
		return
	}

	ctx, cancel := errors.WithTimeout(r.Context(), 0)
	defer cancel()

	result, err := h.Service.Delete(ctx, id)
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrCategoryNotFound):
			h.WriteJSON(w, http.StatusNotFound, map[string]interface{}{"message": err.Error()})
		case stderrors.Is(err, errors.ErrCategoryHasCards):
			h.WriteJSON(w, http.StatusConflict, map[string]interface{}{"message": err.Error()})
		default:
			// the delete path never leaks internal detail to the caller
			h.Logger.Error("DeleteCategory: unexpected error", "error", err, "category_id", id)
			h.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal Server Error"})
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, MutationResponse{
		Message: "Category deleted successfully",
		Result:  result,
	})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parsePositiveInt coerces a query value, falling back to the default on
// anything non-numeric or non-positive.
func parsePositiveInt(value string, defaultVal int) int {
	if value == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return defaultVal
	}
	return n
}

func validationMessages(err *errors.AppError) []string {
	if details, ok := err.Details.(errors.ValidationErrors); ok {
		return details.Messages()
	}
	return []string{err.Message}
}

func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be %s", typeErr.Field, expectedKind(typeErr))
	}
	return "invalid request body"
}

func expectedKind(typeErr *json.UnmarshalTypeError) string {
	switch typeErr.Type.Kind().String() {
	case "string":
		return "a string"
	case "int", "int64":
		return "an integer"
	default:
		return "of type " + typeErr.Type.String()
	}
}
