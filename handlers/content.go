package handlers

import (
	"resonance/models"
	"resonance/services/content"
	"resonance/utils"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves the catalog, blog and events. Admin routes see
// inactive products and unpublished posts.
type ContentHandler struct {
	Products content.ProductService
	Blogs    content.BlogService
	Events   content.EventService
}

func (h *ContentHandler) ListProducts(c *gin.Context) {
	products, err := h.Products.ListProducts(c.Request.Context(), isAdmin(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, products)
}

func (h *ContentHandler) GetProduct(c *gin.Context) {
	p, err := h.Products.GetProduct(c.Request.Context(), c.Param("id"), isAdmin(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, p)
}

func (h *ContentHandler) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.Products.CreateProduct(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, p, "Product created")
}

func (h *ContentHandler) UpdateProduct(c *gin.Context) {
	var in models.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.Products.UpdateProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, p)
}

func (h *ContentHandler) DeleteProduct(c *gin.Context) {
	if err := h.Products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, "Product deleted")
}

func (h *ContentHandler) ListBlogs(c *gin.Context) {
	blogs, err := h.Blogs.ListBlogs(c.Request.Context(), isAdmin(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, blogs)
}

func (h *ContentHandler) GetBlog(c *gin.Context) {
	b, err := h.Blogs.GetBlog(c.Request.Context(), c.Param("id"), isAdmin(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, b)
}

func (h *ContentHandler) CreateBlog(c *gin.Context) {
	var in models.BlogInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.Blogs.CreateBlog(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, b, "Blog created")
}

func (h *ContentHandler) UpdateBlog(c *gin.Context) {
	var in models.BlogInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.Blogs.UpdateBlog(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, b)
}

func (h *ContentHandler) DeleteBlog(c *gin.Context) {
	if err := h.Blogs.DeleteBlog(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, "Blog deleted")
}

func (h *ContentHandler) ListEvents(c *gin.Context) {
	events, err := h.Events.ListEvents(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, events)
}

func (h *ContentHandler) GetEvent(c *gin.Context) {
	e, err := h.Events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, e)
}

func (h *ContentHandler) CreateEvent(c *gin.Context) {
	var in models.EventInput
	if !bindJSON(c, &in) {
		return
	}
	e, err := h.Events.CreateEvent(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, e, "Event created")
}

func (h *ContentHandler) UpdateEvent(c *gin.Context) {
	var in models.EventInput
	if !bindJSON(c, &in) {
		return
	}
	e, err := h.Events.UpdateEvent(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, e)
}

func (h *ContentHandler) DeleteEvent(c *gin.Context) {
	if err := h.Events.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, "Event deleted")
}
