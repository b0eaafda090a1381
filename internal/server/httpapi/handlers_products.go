package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mkropacheva/storefront/internal/server/models"
	"github.com/mkropacheva/storefront/internal/server/services"
)

type productRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Brand       string    `json:"brand,omitempty"`
	Description string    `json:"description,omitempty"`
	Quantity    string    `json:"quantity,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// toProductResponse projects a product, turning its storage key into a
// presigned GET URL. A presign failure is not fatal to the read: the
// product is still returned, just without the image link.
func (s *Server) toProductResponse(r *http.Request, p *models.Product) productResponse {
	resp := productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Brand:       p.Brand,
		Description: p.Description,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
	}
	if p.ImageKey != "" {
		url, err := s.products.ImageURL(r.Context(), p.ImageKey)
		if err != nil {
			s.logger.Warn(r.Context(), "presigning image url failed", "product_id", p.ID, "error", err.Error())
		} else {
			resp.ImageURL = url
		}
	}
	return resp
}

func (s *Server) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Price == "" {
		writeError(w, http.StatusBadRequest, "name and price are required")
		return
	}

	product, err := s.products.Create(r.Context(), services.ProductParams{
		Name:        req.Name,
		Price:       req.Price,
		Brand:       req.Brand,
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.toProductResponse(r, product))
}

func (s *Server) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := s.products.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]productResponse, 0, len(all))
	for _, p := range all {
		out = append(out, s.toProductResponse(r, p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getProductHandler(w http.ResponseWriter, r *http.Request) {
	product, err := s.products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toProductResponse(r, product))
}

func (s *Server) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := s.products.Update(r.Context(), mux.Vars(r)["id"], services.ProductParams{
		Name:        req.Name,
		Price:       req.Price,
		Brand:       req.Brand,
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toProductResponse(r, product))
}

func (s *Server) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

type imageUploadResponse struct {
	UploadURL string `json:"upload_url"`
}

func (s *Server) productImageUploadHandler(w http.ResponseWriter, r *http.Request) {
	url, err := s.products.CreateImageUploadURL(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, imageUploadResponse{UploadURL: url})
}
