package authz

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/SamridhiParajuli/store-dashboard/internal/transport"
	"github.com/SamridhiParajuli/store-dashboard/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

func (h *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	h.WriteJSON(w, http.StatusOK, h.Service.ListPermissions(filter))
}

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	perm, err := h.Service.CreatePermission(dto.Name, dto.Description, dto.Category)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, perm)
}

func (h *Handler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permission id")
		return
	}

	var dto UpdatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	perm, err := h.Service.UpdatePermission(id, UpdateFields{
		Description: dto.Description,
		Category:    dto.Category,
	})
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, perm)
}

func (h *Handler) DeletePermission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permission id")
		return
	}

	if err := h.Service.DeletePermission(id); err != nil {
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetRoleMatrix renders every role's full permission sheet for the
// admin matrix screen.
func (h *Handler) GetRoleMatrix(w http.ResponseWriter, r *http.Request) {
	sheet := h.Service.MatrixByRole()
	resp := RoleMatrixResponse{Roles: make(map[Role][]RolePermissionResponse, len(sheet))}
	for role, rows := range sheet {
		resp.Roles[role] = h.toResponses(rows)
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetRolePermissions(w http.ResponseWriter, r *http.Request) {
	role, err := ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.WriteJSON(w, http.StatusOK, h.toResponses(h.Service.ListForRole(role)))
}

func (h *Handler) SetCapability(w http.ResponseWriter, r *http.Request) {
	var dto SetCapabilityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	role, _ := ParseRole(dto.Role)
	capability, _ := ParseCapability(dto.Capability)

	row, err := h.Service.SetCapability(role, dto.PermissionID, capability, dto.Value)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, row)
}

func (h *Handler) toResponses(rows []RolePermission) []RolePermissionResponse {
	resp := make([]RolePermissionResponse, 0, len(rows))
	for _, rp := range rows {
		name := ""
		if perm, ok := h.Service.Catalog().GetByID(rp.PermissionID); ok {
			name = perm.Name
		}
		resp = append(resp, RolePermissionResponse{
			PermissionID:   rp.PermissionID,
			PermissionName: name,
			CanView:        rp.CanView,
			CanCreate:      rp.CanCreate,
			CanEdit:        rp.CanEdit,
			CanDelete:      rp.CanDelete,
		})
	}
	return resp
}
