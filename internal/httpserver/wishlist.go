package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	wishlistsvc "library-backend/internal/service/wishlist"
)

type addWishlistRequest struct {
	ISBN string `json:"isbn"`
}

func addWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addWishlistRequest
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		item, err := svc.Add(c.Request.Context(), actorFrom(c), in.ISBN)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, item)
	}
}

func removeWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := svc.Remove(c.Request.Context(), actorFrom(c), id); err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"id": id})
	}
}

func requestWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := svc.Request(c.Request.Context(), actorFrom(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, item)
	}
}

func listWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), actorFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, items)
	}
}

func reservationsHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.PendingReservations(c.Request.Context(), actorFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, items)
	}
}

func pickupReservationHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := svc.MarkPickedUp(c.Request.Context(), actorFrom(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, item)
	}
}

func listLibraryWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListLibrarianItems(c.Request.Context(), actorFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, items)
	}
}

func addLibraryWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in wishlistsvc.LibrarianAddInput
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		item, err := svc.AddLibrarianItem(c.Request.Context(), actorFrom(c), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, item)
	}
}

func removeLibraryWishlistHandler(svc wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := svc.RemoveLibrarianItem(c.Request.Context(), actorFrom(c), id); err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"id": id})
	}
}
