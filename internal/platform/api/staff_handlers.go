package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go.storegate.dev/internal/platform/pipeline"
	"go.storegate.dev/internal/platform/staff"
	"go.storegate.dev/internal/platform/staff/operations"
)

// StaffHandler exposes the guarded staff operations over HTTP. Every
// endpoint goes through a wrapped invoker; the handler itself only shapes
// the request into arguments and the result into a response.
type StaffHandler struct {
	create        pipeline.Invoker
	assignRole    pipeline.Invoker
	deactivate    pipeline.Invoker
	updateProfile pipeline.Invoker
	list          pipeline.Invoker
	get           pipeline.Invoker
}

// NewStaffHandler wraps the staff use cases with the pipeline.
func NewStaffHandler(pl *pipeline.Pipeline, repo staff.Repository) *StaffHandler {
	createUC := operations.NewCreateStaffUseCase(repo)
	assignUC := operations.NewAssignRoleUseCase(repo)
	deactivateUC := operations.NewDeactivateStaffUseCase(repo)
	profileUC := operations.NewUpdateProfileUseCase(repo)
	listUC := operations.NewListStaffUseCase(repo)
	getUC := operations.NewGetStaffUseCase(repo)

	return &StaffHandler{
		create:        pl.Wrap(createUC.Action(), createUC.Handle),
		assignRole:    pl.Wrap(assignUC.Action(), assignUC.Handle),
		deactivate:    pl.Wrap(deactivateUC.Action(), deactivateUC.Handle),
		updateProfile: pl.Wrap(profileUC.Action(), profileUC.Handle),
		list:          pl.Wrap(listUC.Action(), listUC.Handle),
		get:           pl.Wrap(getUC.Action(), getUC.Handle),
	}
}

// Routes returns the router for staff endpoints, mounted under
// /api/v1/stores/{storeId}/staff.
func (h *StaffHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{staffId}", h.Get)
	r.Put("/{staffId}/role", h.AssignRole)
	r.Post("/{staffId}/deactivate", h.Deactivate)
	r.Put("/{staffId}/profile", h.UpdateProfile)

	return r
}

// List handles GET /api/v1/stores/{storeId}/staff
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	result := h.list(r.Context(), GetPrincipal(r.Context()), pipeline.Args{
		pipeline.ArgStoreID: chi.URLParam(r, "storeId"),
	})
	WriteResult(w, result, http.StatusOK)
}

// Get handles GET /api/v1/stores/{storeId}/staff/{staffId}
func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	result := h.get(r.Context(), GetPrincipal(r.Context()), pipeline.Args{
		pipeline.ArgStoreID: chi.URLParam(r, "storeId"),
		"staffId":           chi.URLParam(r, "staffId"),
	})
	WriteResult(w, result, http.StatusOK)
}

// Create handles POST /api/v1/stores/{storeId}/staff
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	input := decodeInput(w, r)
	if input == nil {
		return
	}

	result := h.create(r.Context(), GetPrincipal(r.Context()), pipeline.Args{
		pipeline.ArgStoreID: chi.URLParam(r, "storeId"),
		pipeline.ArgInput:   input,
	})
	WriteResult(w, result, http.StatusCreated)
}

// AssignRole handles PUT /api/v1/stores/{storeId}/staff/{staffId}/role
func (h *StaffHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	input := decodeInput(w, r)
	if input == nil {
		return
	}
	input["staffId"] = chi.URLParam(r, "staffId")

	result := h.assignRole(r.Context(), GetPrincipal(r.Context()), pipeline.Args{
		pipeline.ArgStoreID: chi.URLParam(r, "storeId"),
		pipeline.ArgInput:   input,
	})
	WriteResult(w, result, http.StatusOK)
}

// Deactivate handles POST /api/v1/stores/{storeId}/staff/{staffId}/deactivate
func (h *StaffHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	result := h.deactivate(r.Context(), GetPrincipal(r.Context()), pipeline.Args{
		pipeline.ArgStoreID: chi.URLParam(r, "storeId"),
		pipeline.ArgInput:   map[string]any{"staffId": chi.URLParam(r, "staffId")},
	})
	WriteResult(w, result, http.StatusOK)
}

// UpdateProfile handles PUT /api/v1/stores/{storeId}/staff/{staffId}/profile
func (h *StaffHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	input := decodeInput(w, r)
	if input == nil {
		return
	}

	result := h.updateProfile(r.Context(), GetPrincipal(r.Context()), pipeline.Args{
		pipeline.ArgStoreID:   chi.URLParam(r, "storeId"),
		pipeline.ArgAccountID: chi.URLParam(r, "staffId"),
		pipeline.ArgInput:     input,
	})
	WriteResult(w, result, http.StatusOK)
}

// decodeInput reads the request body into an input payload, answering the
// request itself when the body is unreadable.
func decodeInput(w http.ResponseWriter, r *http.Request) map[string]any {
	input := make(map[string]any)
	if err := DecodeJSON(r, &input); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{
			"code":    "request.invalid_body",
			"message": "Invalid request body",
		})
		return nil
	}
	return input
}
