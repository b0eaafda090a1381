package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mkropacheva/storefront/internal/common"
	"github.com/mkropacheva/storefront/internal/server/models"
	"github.com/mkropacheva/storefront/internal/server/services"
)

// accountResponse is the public projection of an account. It deliberately
// has no digest field, so a stored credential can never leak through a
// handler by accident.
type accountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountResponse(a *models.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// The specific cause stays in the logs only.
		s.logger.Warn(r.Context(), "login failed", "reason", err.Error())
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: result.Token, Email: result.Identity.Email})
}

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type registerResponse struct {
	accountResponse
	Token string `json:"token"`
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, token, err := s.accounts.Register(r.Context(), services.RegisterParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		if !errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		}
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "account registered", "email", account.Email)
	writeJSON(w, http.StatusCreated, registerResponse{accountResponse: toAccountResponse(account), Token: token})
}

func (s *Server) listAccountsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := s.accounts.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]accountResponse, 0, len(all))
	for _, a := range all {
		out = append(out, toAccountResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getAccountHandler(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

type updateAccountRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

func (s *Server) updateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := s.accounts.Update(r.Context(), mux.Vars(r)["id"], services.UpdateAccountParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (s *Server) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
