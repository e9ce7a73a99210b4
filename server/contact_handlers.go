package server

import (
	"net/http"

	"github.com/jrsteele09/go-contacts-server/contacts"
	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
)

func (s *Server) CreateContactHandler() http.HandlerFunc {
	return s.withCaller(func(w http.ResponseWriter, r *http.Request, ownerID string) {
		var in contacts.NewContact
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, err)
			return
		}

		contact, err := s.contacts.Create(r.Context(), ownerID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, contact)
	})
}

func (s *Server) ListContactsHandler() http.HandlerFunc {
	return s.withCaller(func(w http.ResponseWriter, r *http.Request, ownerID string) {
		filter, err := parseFilter(r)
		if err != nil {
			writeError(w, err)
			return
		}

		list, err := s.contacts.List(r.Context(), ownerID, filter)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	})
}

func (s *Server) GetContactHandler() http.HandlerFunc {
	return s.withCaller(func(w http.ResponseWriter, r *http.Request, ownerID string) {
		contact, err := s.contacts.Get(r.Context(), ownerID, r.PathValue(pathValueContactID))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, contact)
	})
}

func (s *Server) UpdateContactHandler() http.HandlerFunc {
	return s.withCaller(func(w http.ResponseWriter, r *http.Request, ownerID string) {
		var update contacts.Update
		if err := decodeJSON(w, r, &update); err != nil {
			writeError(w, err)
			return
		}

		contact, err := s.contacts.Update(r.Context(), ownerID, r.PathValue(pathValueContactID), update)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, contact)
	})
}

func (s *Server) DeleteContactHandler() http.HandlerFunc {
	return s.withCaller(func(w http.ResponseWriter, r *http.Request, ownerID string) {
		if err := s.contacts.Delete(r.Context(), ownerID, r.PathValue(pathValueContactID)); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
	})
}

func (s *Server) ToggleFavouriteHandler() http.HandlerFunc {
	return s.withCaller(func(w http.ResponseWriter, r *http.Request, ownerID string) {
		contact, err := s.contacts.ToggleFavorite(r.Context(), ownerID, r.PathValue(pathValueContactID))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, contact)
	})
}

// withCaller hands the resolved caller's ID to handlers mounted behind RequireAuth
func (s *Server) withCaller(handler func(w http.ResponseWriter, r *http.Request, ownerID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerFromContext(r.Context())
		if !ok {
			writeError(w, apperrors.ErrUnauthorized)
			return
		}
		handler(w, r, caller.ID)
	}
}

func parseFilter(r *http.Request) (contacts.Filter, error) {
	query := r.URL.Query()
	filter := contacts.Filter{
		Search: query.Get("search"),
		Tag:    query.Get("tag"),
	}
	if raw := query.Get("favorite"); raw != "" {
		favorite, err := parseBoolParam("favorite", raw)
		if err != nil {
			return contacts.Filter{}, err
		}
		filter.Favorite = &favorite
	}
	return filter, nil
}
