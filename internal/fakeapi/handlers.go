package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

type productBody struct {
	ID          int64             `json:"id"`
	ProductName string            `json:"productName"`
	Description string            `json:"description"`
	Price       *decimal.Decimal  `json:"price"`
	StockStatus model.StockStatus `json:"stockStatus"`
	ImageURL    string            `json:"imageUrl"`
	CategoryID  int64             `json:"categoryId"`
}

type categoryBody struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
}

type addUserBody struct {
	UserName string           `json:"userName"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	RoleID   int64            `json:"roleId"`
	Status   model.UserStatus `json:"status"`
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// Products

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, sortedByID(s.products))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[pathID(r)]
	if !ok {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if c, ok := s.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.ProductName == "" || body.Price == nil || body.CategoryID == 0 {
		respondError(w, http.StatusBadRequest, "productName, price and categoryId are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[body.CategoryID]; !ok {
		respondError(w, http.StatusBadRequest, "Unknown category")
		return
	}
	p := body.toProduct(s.newID())
	s.products[p.ID] = p
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[body.ID]; !ok {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if body.Price == nil {
		respondError(w, http.StatusBadRequest, "price is required")
		return
	}
	p := body.toProduct(body.ID)
	s.products[p.ID] = p
	respondJSON(w, http.StatusOK, p)
}

func (b productBody) toProduct(id int64) model.Product {
	status := b.StockStatus
	if status == "" {
		status = model.StockAvailable
	}
	return model.Product{
		ID:          id,
		ProductName: b.ProductName,
		Description: b.Description,
		Price:       *b.Price,
		StockStatus: status,
		ImageURL:    b.ImageURL,
		CategoryID:  b.CategoryID,
	}
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	needle := strings.ToLower(r.URL.Query().Get("productName"))

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Product{}
	for _, p := range sortedByID(s.products) {
		if strings.Contains(strings.ToLower(p.ProductName), needle) {
			out = append(out, p)
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleFilterProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categoryID, _ := strconv.ParseInt(q.Get("categoryId"), 10, 64)
	stock := model.StockStatus(q.Get("stockStatus"))

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Product{}
	for _, p := range sortedByID(s.products) {
		if categoryID != 0 && p.CategoryID != categoryID {
			continue
		}
		if stock != "" && p.StockStatus != stock {
			continue
		}
		out = append(out, p)
	}
	respondJSON(w, http.StatusOK, out)
}

// Categories

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, sortedByID(s.categories))
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[pathID(r)]
	if !ok {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var body categoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.CategoryName == "" {
		respondError(w, http.StatusBadRequest, "categoryName is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Category{ID: s.newID(), CategoryName: body.CategoryName, Description: body.Description}
	s.categories[c.ID] = c
	respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var body categoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[body.ID]; !ok {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	c := model.Category{ID: body.ID, CategoryName: body.CategoryName, Description: body.Description}
	s.categories[c.ID] = c
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleSearchCategories(w http.ResponseWriter, r *http.Request) {
	needle := strings.ToLower(r.URL.Query().Get("categoryName"))

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Category{}
	for _, c := range sortedByID(s.categories) {
		if strings.Contains(strings.ToLower(c.CategoryName), needle) {
			out = append(out, c)
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCategoryProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[pathID(r)]
	if !ok {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	products := []model.Product{}
	for _, p := range sortedByID(s.products) {
		if p.CategoryID == c.ID {
			p.Name = p.ProductName
			products = append(products, p)
		}
	}
	respondJSON(w, http.StatusOK, model.CategoryProducts{Category: c, Products: products})
}

// Users

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.AdminUser{}
	for _, rec := range sortedByID(s.admins) {
		out = append(out, rec.AdminUser)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var body addUserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.UserName == "" || body.Email == "" || body.Password == "" {
		respondError(w, http.StatusBadRequest, "userName, email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := model.AdminUser{
		ID:       s.newID(),
		UserName: body.UserName,
		Email:    body.Email,
		Status:   body.Status,
		RoleID:   body.RoleID,
	}
	s.admins[u.ID] = adminRecord{AdminUser: u, Password: body.Password}
	respondJSON(w, http.StatusCreated, u)
}

func (s *Server) handleRemoveUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == 0 {
		respondError(w, http.StatusBadRequest, "No User ID provided")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[body.ID]; !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	delete(s.admins, body.ID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "User removed"})
}

func (s *Server) handleListConsumers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, sortedByID(s.consumers))
}

// Uploads

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	key := uuid.NewString() + safeExt(header.Filename)
	s.mu.Lock()
	s.uploads[key] = upload{ContentType: header.Header.Get("Content-Type"), Data: data}
	s.mu.Unlock()

	fileURL := strings.TrimRight(s.cfg.URLPrefix, "/") + "/" + key
	s.logger.Info("fakeapi stored upload", zap.String("key", key), zap.Int("size", len(data)))
	respondJSON(w, http.StatusOK, map[string]string{"fileUrl": fileURL})
}

func (s *Server) handleUploadedFile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.uploads[mux.Vars(r)["key"]]
	s.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, "File not found")
		return
	}
	if u.ContentType != "" {
		w.Header().Set("Content-Type", u.ContentType)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(u.Data)
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return ext
	default:
		return ""
	}
}
