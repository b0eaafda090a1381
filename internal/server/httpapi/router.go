package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.identityMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/login", s.loginHandler).Methods("POST")

	api.HandleFunc("/accounts", s.registerHandler).Methods("POST")
	api.HandleFunc("/accounts", s.listAccountsHandler).Methods("GET")
	api.HandleFunc("/accounts/{id}", s.getAccountHandler).Methods("GET")
	api.HandleFunc("/accounts/{id}", s.requireIdentity(s.updateAccountHandler)).Methods("PUT")
	api.HandleFunc("/accounts/{id}", s.requireIdentity(s.deleteAccountHandler)).Methods("DELETE")

	api.HandleFunc("/products", s.listProductsHandler).Methods("GET")
	api.HandleFunc("/products/{id}", s.getProductHandler).Methods("GET")
	api.HandleFunc("/products", s.requireIdentity(s.createProductHandler)).Methods("POST")
	api.HandleFunc("/products/{id}", s.requireIdentity(s.updateProductHandler)).Methods("PUT")
	api.HandleFunc("/products/{id}", s.requireIdentity(s.deleteProductHandler)).Methods("DELETE")
	api.HandleFunc("/products/{id}/image", s.requireIdentity(s.productImageUploadHandler)).Methods("POST")

	return r
}
