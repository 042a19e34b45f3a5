package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type customerLoginResponse struct {
	Customer customerView `json:"customer"`
	Token    string       `json:"token"`
}

type librarianLoginResponse struct {
	Librarian librarianView `json:"librarian"`
	Token     string        `json:"token"`
}

func loginCustomerHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		customer, token, err := svc.LoginCustomer(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, customerLoginResponse{
			Customer: toCustomerView(*customer),
			Token:    token,
		})
	}
}

func loginLibrarianHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		librarian, token, err := svc.LoginLibrarian(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, librarianLoginResponse{
			Librarian: toLibrarianView(*librarian),
			Token:     token,
		})
	}
}

func logoutHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Logout(c.Request.Context(), bearerToken(c)); err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"loggedOut": true})
	}
}

func campusesHandler(repo campusRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		campuses, err := repo.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, campuses)
	}
}
