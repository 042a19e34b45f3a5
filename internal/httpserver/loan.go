package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	loansvc "library-backend/internal/service/loan"
)

func startLoanHandler(svc loanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loansvc.OpenInput
		if err := bindStrict(c, &in); err != nil {
			respondError(c, err)
			return
		}
		book, err := svc.Open(c.Request.Context(), actorFrom(c), in)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, toBookView(*book))
	}
}

func closeLoanHandler(svc loanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		loan, err := svc.Close(c.Request.Context(), actorFrom(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, toLoanView(*loan))
	}
}

func getLoanHandler(svc loanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		loan, err := svc.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, toLoanView(*loan))
	}
}

func customerLoansHandler(svc loanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		loans, err := svc.ActiveForCustomer(c.Request.Context(), actorFrom(c), c.Param("ssn"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, toLoanViews(loans))
	}
}
