package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rextj1/laragigs/internal/service"
	"github.com/rextj1/laragigs/internal/session"
	"github.com/rextj1/laragigs/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	listings service.ListingService
	storage  storage.Service
	sessions *session.Manager
	// staticRoot is the local storage directory mounted at /storage.
	// Empty when a remote storage backend is in use.
	staticRoot string
	logger     *logrus.Logger
}

func NewHandler(
	users service.UserService,
	listings service.ListingService,
	store storage.Service,
	sessions *session.Manager,
	staticRoot string,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:      users,
		listings:   listings,
		storage:    store,
		sessions:   sessions,
		staticRoot: staticRoot,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.sessions.Middleware())

	if h.staticRoot != "" {
		router.Static("/storage", h.staticRoot)
	}

	router.GET("/", h.home)
	router.GET("/listings/:id", h.showListing)

	router.GET("/register", h.showRegister)
	router.POST("/users", h.createUser)
	router.GET("/login", h.showLogin)
	router.POST("/users/authenticate", h.authenticate)
	router.POST("/logout", h.requireAuth(), h.logout)

	router.GET("/listings/create", h.requireAuth(), h.showCreateListing)
	router.POST("/listings", h.requireAuth(), h.createListing)
	router.GET("/listings/manage", h.requireAuth(), h.manageListings)

	router.GET("/listings/:id/edit", h.requireAuth(), h.requireListingOwner(), h.showEditListing)
	router.PUT("/listings/:id", h.requireAuth(), h.requireListingOwner(), h.updateListing)
	router.DELETE("/listings/:id", h.requireAuth(), h.requireListingOwner(), h.deleteListing)
}

// render writes an HTML view with the session flash and current user mixed in.
func (h *Handler) render(c *gin.Context, status int, view string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["flash"]; !ok {
		if msg, found := h.sessions.PopFlash(c, "message"); found {
			data["flash"] = msg
		}
	}
	if _, ok := data["user"]; !ok {
		if sess := session.FromContext(c); sess.Authenticated() {
			if user, err := h.users.GetByID(c.Request.Context(), sess.UserID); err == nil {
				data["user"] = user
			}
		}
	}
	c.HTML(status, view, data)
}
