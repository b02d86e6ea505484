package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rextj1/laragigs/internal/repository"
	"github.com/rextj1/laragigs/internal/service"
	"github.com/rextj1/laragigs/internal/session"
)

type listingForm struct {
	Title       string `form:"title" binding:"required"`
	Company     string `form:"company" binding:"required"`
	Location    string `form:"location" binding:"required"`
	Website     string `form:"website" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	Tags        string `form:"tags" binding:"required"`
	Description string `form:"description" binding:"required"`
}

func (f listingForm) input() service.ListingInput {
	return service.ListingInput{
		Title:       f.Title,
		Company:     f.Company,
		Location:    f.Location,
		Website:     f.Website,
		Email:       f.Email,
		Tags:        f.Tags,
		Description: f.Description,
	}
}

func (h *Handler) home(c *gin.Context) {
	filter := repository.ListingFilter{
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
	}

	listings, err := h.listings.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("list listings")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.render(c, http.StatusOK, "home", gin.H{
		"listings": listings,
		"search":   filter.Search,
	})
}

func (h *Handler) showListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "Listing not found")
		return
	}

	listing, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			c.String(http.StatusNotFound, "Listing not found")
			return
		}
		h.logger.WithError(err).Error("get listing")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	sess := session.FromContext(c)
	h.render(c, http.StatusOK, "listings.show", gin.H{
		"listing": listing,
		"isOwner": sess.Authenticated() && sess.UserID == listing.UserID,
	})
}

func (h *Handler) manageListings(c *gin.Context) {
	sess := session.FromContext(c)

	listings, err := h.listings.ListByUser(c.Request.Context(), sess.UserID)
	if err != nil {
		h.logger.WithError(err).Error("list user listings")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.render(c, http.StatusOK, "listings.manage", gin.H{"listings": listings})
}

func (h *Handler) showCreateListing(c *gin.Context) {
	h.render(c, http.StatusOK, "listings.create", gin.H{"form": listingForm{}})
}

func (h *Handler) createListing(c *gin.Context) {
	var form listingForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "listings.create", gin.H{
			"form":   form,
			"errors": []string{"All fields are required and the email must be valid"},
		})
		return
	}

	logo, err := h.storeLogo(c)
	if err != nil {
		h.logger.WithError(err).Error("store logo upload")
		h.render(c, http.StatusUnprocessableEntity, "listings.create", gin.H{
			"form":   form,
			"errors": []string{"Could not store the uploaded logo"},
		})
		return
	}

	sess := session.FromContext(c)
	if _, err := h.listings.Create(c.Request.Context(), sess.UserID, form.input(), logo); err != nil {
		h.logger.WithError(err).Error("create listing")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.sessions.Flash(c, "message", "Listing created successfully!")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) showEditListing(c *gin.Context) {
	listing := currentListing(c)
	h.render(c, http.StatusOK, "listings.edit", gin.H{
		"listing": listing,
		"form": listingForm{
			Title:       listing.Title,
			Company:     listing.Company,
			Location:    listing.Location,
			Website:     listing.Website,
			Email:       listing.Email,
			Tags:        listing.Tags,
			Description: listing.Description,
		},
	})
}

func (h *Handler) updateListing(c *gin.Context) {
	listing := currentListing(c)

	var form listingForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "listings.edit", gin.H{
			"listing": listing,
			"form":    form,
			"errors":  []string{"All fields are required and the email must be valid"},
		})
		return
	}

	logo, err := h.storeLogo(c)
	if err != nil {
		h.logger.WithError(err).Error("store logo upload")
		h.render(c, http.StatusUnprocessableEntity, "listings.edit", gin.H{
			"listing": listing,
			"form":    form,
			"errors":  []string{"Could not store the uploaded logo"},
		})
		return
	}

	_, replacedLogo, err := h.listings.Update(c.Request.Context(), listing.ID, form.input(), logo)
	if err != nil {
		h.logger.WithError(err).Error("update listing")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	if replacedLogo != "" {
		if err := h.storage.Delete(c.Request.Context(), replacedLogo); err != nil {
			h.logger.WithError(err).Warn("remove replaced logo")
		}
	}

	h.sessions.Flash(c, "message", "Listing updated successfully!")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) deleteListing(c *gin.Context) {
	listing := currentListing(c)

	removedLogo, err := h.listings.Delete(c.Request.Context(), listing.ID)
	if err != nil {
		h.logger.WithError(err).Error("delete listing")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	if removedLogo != "" {
		if err := h.storage.Delete(c.Request.Context(), removedLogo); err != nil {
			h.logger.WithError(err).Warn("remove deleted listing logo")
		}
	}

	h.sessions.Flash(c, "message", "Listing deleted successfully")
	c.Redirect(http.StatusFound, "/")
}

// storeLogo persists an uploaded logo if one was included in the request.
// A nil result with nil error means the request carried no file.
func (h *Handler) storeLogo(c *gin.Context) (*string, error) {
	file, err := c.FormFile("logo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	path, err := h.storage.Store(c.Request.Context(), "logos", file.Filename, src)
	if err != nil {
		return nil, err
	}
	return &path, nil
}
