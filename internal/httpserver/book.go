package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogsvc "library-backend/internal/service/catalog"
)

func createBookHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.CreateBookInput
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		book, err := svc.CreateBook(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, toBookView(*book))
	}
}

func getBookHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		book, err := svc.GetBook(c.Request.Context(), c.Param("isbn"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, toBookView(*book))
	}
}

func updateBookHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.UpdateBookInput
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		book, err := svc.UpdateBook(c.Request.Context(), c.Param("isbn"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, toBookView(*book))
	}
}

func updateStockHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.StockInput
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		book, err := svc.UpdateStock(c.Request.Context(), c.Param("isbn"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, toBookView(*book))
	}
}

func disableBookHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		isbn := c.Param("isbn")
		if err := svc.DisableBook(c.Request.Context(), isbn); err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"isbn": isbn})
	}
}

func enableBookHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		isbn := c.Param("isbn")
		if err := svc.EnableBook(c.Request.Context(), isbn); err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"isbn": isbn})
	}
}

func searchHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.SearchInput
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		books, err := svc.Search(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, toBookViews(books))
	}
}
