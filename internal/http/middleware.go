package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rextj1/laragigs/internal/domain"
	"github.com/rextj1/laragigs/internal/repository"
	"github.com/rextj1/laragigs/internal/session"
)

const ctxListingKey = "listing.current"

// maxUploadBytes caps multipart parsing done by the method override wrapper.
const maxUploadBytes = 32 << 20

// MethodOverride rewrites POST requests carrying a _method form field into the
// verb HTML forms cannot express. It must wrap the router, not run inside it,
// so the rewritten verb is what gets routed.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := overrideMethod(r)
			if override == http.MethodPut || override == http.MethodDelete {
				r.Method = override
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return ""
		}
	} else if err := r.ParseForm(); err != nil {
		return ""
	}
	return strings.ToUpper(r.PostFormValue("_method"))
}

// requireAuth redirects anonymous visitors to the login page.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)
		if !sess.Authenticated() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireListingOwner loads the listing named by the id parameter, verifies the
// session user owns it, and hands it to the handler body via the context. The
// handler only ever sees an already-authorized listing.
func (h *Handler) requireListingOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			c.String(http.StatusNotFound, "Listing not found")
			c.Abort()
			return
		}

		listing, err := h.listings.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrListingNotFound) {
				c.String(http.StatusNotFound, "Listing not found")
			} else {
				h.logger.WithError(err).Warn("load listing for authorization")
				c.String(http.StatusInternalServerError, "Something went wrong")
			}
			c.Abort()
			return
		}

		sess := session.FromContext(c)
		if listing.UserID != sess.UserID {
			c.String(http.StatusForbidden, "Unauthorized action")
			c.Abort()
			return
		}

		c.Set(ctxListingKey, listing)
		c.Next()
	}
}

// currentListing returns the listing stashed by requireListingOwner.
func currentListing(c *gin.Context) *domain.Listing {
	v, ok := c.Get(ctxListingKey)
	if !ok {
		return nil
	}
	listing, _ := v.(*domain.Listing)
	return listing
}
