package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "library-backend/internal/service/customer"
)

// registrationResponse carries the relaxed customer view plus the generated
// initial password, returned exactly once.
type registrationResponse struct {
	Customer        customerView `json:"customer"`
	InitialPassword string       `json:"initialPassword"`
}

func createCustomerHandler(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in customersvc.RegisterInput
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		customer, password, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, registrationResponse{
			Customer:        toCustomerView(*customer),
			InitialPassword: password,
		})
	}
}

// registerHandler is the public self-registration endpoint; it reuses the
// librarian-side creation flow.
func registerHandler(svc customerService) gin.HandlerFunc {
	return createCustomerHandler(svc)
}

func getCustomerHandler(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := svc.Get(c.Request.Context(), c.Param("ssn"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, toCustomerView(*customer))
	}
}

func findCustomerHandler(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cards, err := svc.FindByCardPrefix(c.Request.Context(), c.Param("prefix"))
		if err != nil {
			respondError(c, err)
			return
		}
		views := make([]cardView, 0, len(cards))
		for _, card := range cards {
			views = append(views, toCardView(card))
		}
		respondData(c, http.StatusOK, views)
	}
}

func updateCustomerHandler(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in customersvc.UpdateInput
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		customer, err := svc.Update(c.Request.Context(), c.Param("ssn"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, toCustomerView(*customer))
	}
}

func disableCustomerHandler(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ssn := c.Param("ssn")
		if err := svc.Disable(c.Request.Context(), ssn); err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"ssn": ssn})
	}
}

func enableCustomerHandler(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ssn := c.Param("ssn")
		if err := svc.Enable(c.Request.Context(), ssn); err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"ssn": ssn})
	}
}

func extendCardHandler(svc customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		card, err := svc.ExtendCardValidity(c.Request.Context(), c.Param("ssn"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, toCardView(*card))
	}
}
