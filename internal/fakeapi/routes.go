package fakeapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Route names, usable with Fail and Hold.
const (
	RouteListProducts    = "listProducts"
	RouteGetProduct      = "getEachProduct"
	RouteAddProduct      = "addProducts"
	RouteUpdateProduct   = "updateProdct"
	RouteSearchProducts  = "searchProduct"
	RouteFilterProducts  = "filterProducts"
	RouteListCategories  = "listCategory"
	RouteGetCategory     = "getCategory"
	RouteCreateCategory  = "createCategory"
	RouteUpdateCategory  = "updateCategoryInfo"
	RouteSearchCategory  = "searchCategory"
	RouteCategoryProduct = "categoryProducts"
	RouteListAdmins      = "listAdmin"
	RouteAddUser         = "addUser"
	RouteRemoveUser      = "removeUser"
	RouteListConsumers   = "listConsumer"
	RouteUpload          = "upload"
	RouteUploadedFile    = "uploadedFile"
)

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	api := router
	if p := s.prefix(); p != "" {
		api = router.PathPrefix(p).Subrouter()
	}
	api.Use(s.middleware)

	api.HandleFunc("/products/listProducts", s.handleListProducts).Methods(http.MethodGet).Name(RouteListProducts)
	api.HandleFunc("/products/getEachProduct/{id:[0-9]+}", s.handleGetProduct).Methods(http.MethodGet).Name(RouteGetProduct)
	api.HandleFunc("/products/addProducts", s.handleAddProduct).Methods(http.MethodPost).Name(RouteAddProduct)
	api.HandleFunc("/products/updateProdct", s.handleUpdateProduct).Methods(http.MethodPost).Name(RouteUpdateProduct)
	api.HandleFunc("/products/searchProduct", s.handleSearchProducts).Methods(http.MethodGet).Name(RouteSearchProducts)
	api.HandleFunc("/products/filter", s.handleFilterProducts).Methods(http.MethodGet).Name(RouteFilterProducts)

	api.HandleFunc("/category/listCategory", s.handleListCategories).Methods(http.MethodGet).Name(RouteListCategories)
	api.HandleFunc("/category/searchCategory", s.handleSearchCategories).Methods(http.MethodGet).Name(RouteSearchCategory)
	api.HandleFunc("/category/createCategory", s.handleCreateCategory).Methods(http.MethodPost).Name(RouteCreateCategory)
	api.HandleFunc("/category/updateCategoryInfo", s.handleUpdateCategory).Methods(http.MethodPost).Name(RouteUpdateCategory)
	api.HandleFunc("/category/{id:[0-9]+}", s.handleGetCategory).Methods(http.MethodGet).Name(RouteGetCategory)
	api.HandleFunc("/category/{id:[0-9]+}/products", s.handleCategoryProducts).Methods(http.MethodGet).Name(RouteCategoryProduct)

	api.HandleFunc("/users/listAdmin", s.handleListAdmins).Methods(http.MethodGet).Name(RouteListAdmins)
	api.HandleFunc("/users/addUser", s.handleAddUser).Methods(http.MethodPost).Name(RouteAddUser)
	api.HandleFunc("/users/removeUser", s.handleRemoveUser).Methods(http.MethodPost).Name(RouteRemoveUser)
	api.HandleFunc("/users/listConsumer", s.handleListConsumers).Methods(http.MethodGet).Name(RouteListConsumers)

	api.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost).Name(RouteUpload)
	api.HandleFunc("/uploads/{key}", s.handleUploadedFile).Methods(http.MethodGet).Name(RouteUploadedFile)

	return router
}
