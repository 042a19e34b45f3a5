package httpserver

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domain"
	catalogsvc "library-backend/internal/service/catalog"
	customersvc "library-backend/internal/service/customer"
	loansvc "library-backend/internal/service/loan"
	wishlistsvc "library-backend/internal/service/wishlist"
)

const actorKey = "actor"

type catalogService interface {
	CreateBook(ctx context.Context, in catalogsvc.CreateBookInput) (*domain.Book, error)
	GetBook(ctx context.Context, isbn string) (*domain.Book, error)
	UpdateBook(ctx context.Context, isbn string, in catalogsvc.UpdateBookInput) (*domain.Book, error)
	UpdateStock(ctx context.Context, isbn string, in catalogsvc.StockInput) (*domain.Book, error)
	DisableBook(ctx context.Context, isbn string) error
	EnableBook(ctx context.Context, isbn string) error
	Search(ctx context.Context, in catalogsvc.SearchInput) ([]domain.Book, error)
}

type customerService interface {
	Register(ctx context.Context, in customersvc.RegisterInput) (*domain.Customer, string, error)
	Get(ctx context.Context, ssn string) (*domain.Customer, error)
	FindByCardPrefix(ctx context.Context, prefix string) ([]domain.Card, error)
	Update(ctx context.Context, ssn string, in customersvc.UpdateInput) (*domain.Customer, error)
	Disable(ctx context.Context, ssn string) error
	Enable(ctx context.Context, ssn string) error
	ExtendCardValidity(ctx context.Context, ssn string) (*domain.Card, error)
}

type loanService interface {
	Open(ctx context.Context, actor domain.Actor, in loansvc.OpenInput) (*domain.Book, error)
	Close(ctx context.Context, actor domain.Actor, id string) (*domain.Loan, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Loan, error)
	ActiveForCustomer(ctx context.Context, actor domain.Actor, customerSSN string) ([]domain.Loan, error)
}

type wishlistService interface {
	Add(ctx context.Context, actor domain.Actor, isbn string) (*domain.CustomerWishlistItem, error)
	Remove(ctx context.Context, actor domain.Actor, id string) error
	Request(ctx context.Context, actor domain.Actor, id string) (*domain.CustomerWishlistItem, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.CustomerWishlistItem, error)
	PendingReservations(ctx context.Context, actor domain.Actor) ([]domain.CustomerWishlistItem, error)
	MarkPickedUp(ctx context.Context, actor domain.Actor, id string) (*domain.CustomerWishlistItem, error)
	AddLibrarianItem(ctx context.Context, actor domain.Actor, in wishlistsvc.LibrarianAddInput) (*domain.LibrarianWishlistItem, error)
	RemoveLibrarianItem(ctx context.Context, actor domain.Actor, id string) error
	ListLibrarianItems(ctx context.Context, actor domain.Actor) ([]domain.LibrarianWishlistItem, error)
}

type authService interface {
	LoginCustomer(ctx context.Context, email, password string) (*domain.Customer, string, error)
	LoginLibrarian(ctx context.Context, email, password string) (*domain.Librarian, string, error)
	LookupByToken(ctx context.Context, token string) (domain.Actor, error)
	Logout(ctx context.Context, token string) error
}

type campusRepo interface {
	List(ctx context.Context) ([]domain.Campus, error)
}

// Deps bundles the services the router depends on.
type Deps struct {
	CatalogSvc  catalogService
	CustomerSvc customerService
	LoanSvc     loanService
	WishlistSvc wishlistService
	AuthSvc     authService
	CampusRepo  campusRepo
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	// Public surface: login, catalog search and campus listing.
	router.POST("/api/auth/customer/login", loginCustomerHandler(deps.AuthSvc))
	router.POST("/api/auth/librarian/login", loginLibrarianHandler(deps.AuthSvc))
	router.POST("/api/search", searchHandler(deps.CatalogSvc))
	router.GET("/api/campuses", campusesHandler(deps.CampusRepo))
	router.POST("/v1/register", registerHandler(deps.CustomerSvc))

	authed := router.Group("/api", authRequired(deps.AuthSvc))
	authed.POST("/auth/logout", logoutHandler(deps.AuthSvc))

	authed.GET("/book/:isbn", getBookHandler(deps.CatalogSvc))
	authed.GET("/customer/:ssn", getCustomerHandler(deps.CustomerSvc))
	authed.GET("/customer/:ssn/loans", customerLoansHandler(deps.LoanSvc))
	authed.GET("/loan/:id", getLoanHandler(deps.LoanSvc))

	authed.GET("/wishlist", listWishlistHandler(deps.WishlistSvc))
	authed.PUT("/wishlist/add", addWishlistHandler(deps.WishlistSvc))
	authed.DELETE("/wishlist/remove/:id", removeWishlistHandler(deps.WishlistSvc))
	authed.POST("/wishlist/request/:id", requestWishlistHandler(deps.WishlistSvc))

	staff := authed.Group("", requireLibrarian())
	staff.PUT("/book/create", createBookHandler(deps.CatalogSvc))
	staff.POST("/book/:isbn/update", updateBookHandler(deps.CatalogSvc))
	staff.POST("/book/:isbn/stock", updateStockHandler(deps.CatalogSvc))
	staff.DELETE("/book/:isbn/disable", disableBookHandler(deps.CatalogSvc))
	staff.POST("/book/:isbn/enable", enableBookHandler(deps.CatalogSvc))

	staff.PUT("/customer/create", createCustomerHandler(deps.CustomerSvc))
	staff.POST("/customer/:ssn/update", updateCustomerHandler(deps.CustomerSvc))
	staff.DELETE("/customer/:ssn/disable", disableCustomerHandler(deps.CustomerSvc))
	staff.POST("/customer/:ssn/enable", enableCustomerHandler(deps.CustomerSvc))
	staff.GET("/card/find/:prefix", findCustomerHandler(deps.CustomerSvc))
	staff.POST("/customer/:ssn/card/extend", extendCardHandler(deps.CustomerSvc))

	staff.PUT("/loan/start", startLoanHandler(deps.LoanSvc))
	staff.POST("/loan/close/:id", closeLoanHandler(deps.LoanSvc))

	staff.GET("/library/wishlist", listLibraryWishlistHandler(deps.WishlistSvc))
	staff.PUT("/library/wishlist/add", addLibraryWishlistHandler(deps.WishlistSvc))
	staff.DELETE("/library/wishlist/remove/:id", removeLibraryWishlistHandler(deps.WishlistSvc))
	staff.GET("/library/reservations", reservationsHandler(deps.WishlistSvc))
	staff.POST("/library/reservations/:id/pickup", pickupReservationHandler(deps.WishlistSvc))

	return router
}

// authRequired resolves the bearer token to an actor and stores it in the
// gin context for downstream handlers.
func authRequired(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{OK: false, Error: strPtr("missing bearer token")})
			return
		}
		actor, err := auth.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{OK: false, Error: strPtr("invalid or expired token")})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// requireLibrarian rejects non-librarian actors before the handler runs.
func requireLibrarian() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorFrom(c).Role != domain.RoleLibrarian {
			c.AbortWithStatusJSON(http.StatusForbidden, envelope{OK: false, Error: strPtr(domain.ErrUnauthorized.Error())})
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func strPtr(s string) *string {
	return &s
}
