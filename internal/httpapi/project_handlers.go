package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"planhub.org/internal/audit"
	"planhub.org/internal/auth"
	"planhub.org/internal/project"
	"planhub.org/internal/store"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a *API) handleProjects(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "not authenticated")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/projects/")
	if path == "" {
		switch r.Method {
		case http.MethodPost:
			a.createProject(w, r, caller)
		case http.MethodGet:
			a.listProjects(w, r, caller)
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		}
		return
	}
	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getProject(w, r, caller, path)
	case http.MethodPut:
		a.updateProject(w, r, caller, path)
	case http.MethodDelete:
		a.deleteProject(w, r, caller, path)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) createProject(w http.ResponseWriter, r *http.Request, caller *store.User) {
	var req createProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, err := a.projects.Create(r.Context(), caller, req.Name, req.Description)
	if err != nil {
		handleProjectError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "project.create", map[string]any{
		"project_id": p.ID,
		"name":       p.Name,
	})
	w.Header().Set("Location", "/projects/"+p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func (a *API) listProjects(w http.ResponseWriter, r *http.Request, caller *store.User) {
	list, err := a.projects.List(r.Context(), caller)
	if err != nil {
		handleProjectError(w, r, err)
		return
	}
	if list == nil {
		list = []store.Project{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) getProject(w http.ResponseWriter, r *http.Request, caller *store.User, id string) {
	p, err := a.projects.Get(r.Context(), caller, id)
	if err != nil {
		handleProjectError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) updateProject(w http.ResponseWriter, r *http.Request, caller *store.User, id string) {
	var patch store.ProjectPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, err := a.projects.Update(r.Context(), caller, id, patch)
	if err != nil {
		handleProjectError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "project.update", map[string]any{
		"project_id": p.ID,
	})
	writeJSON(w, http.StatusOK, p)
}

func (a *API) deleteProject(w http.ResponseWriter, r *http.Request, caller *store.User, id string) {
	if err := a.projects.Delete(r.Context(), caller, id); err != nil {
		handleProjectError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "project.delete", map[string]any{
		"project_id": id,
	})
	w.WriteHeader(http.StatusNoContent)
}

func handleProjectError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, project.ErrInvalidID),
		errors.Is(err, project.ErrEmptyPatch),
		errors.Is(err, project.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, project.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "project not found")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
