package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwell/blog-platform/internal/core/ports"
)

// BlogHandler handles HTTP requests for post operations. Every route sits
// behind the Auth middleware; the owner id always comes from the resolved
// identity, never from the request body.
type BlogHandler struct {
	service  ports.BlogService
	activity ports.ActivityService
}

func NewBlogHandler(service ports.BlogService, activity ports.ActivityService) *BlogHandler {
	return &BlogHandler{service: service, activity: activity}
}

// blogID validates the :id path parameter before any store access.
func blogID(c echo.Context) (string, error) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid blog id format")
	}
	return id, nil
}

// List handles GET /blogs.
//
// @Summary      List the caller's posts
// @Tags         blogs
// @Produce      json
// @Param        fresh  query     bool  false  "Bypass the response cache"
// @Success      200    {array}   blogResponse
// @Failure      401    {object}  errorResponse
// @Router       /blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	blogs, err := h.service.List(c.Request().Context(), ports.ListBlogsInput{
		OwnerID:     userID,
		BypassCache: c.QueryParam("fresh") == "true",
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBlogListResponse(blogs))
}

// Create handles POST /blogs.
//
// @Summary      Create a post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body      createBlogRequest  true  "Post details"
// @Success      200   {object}  blogResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	blog, err := h.service.Create(c.Request().Context(), ports.CreateBlogInput{
		OwnerID: userID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Status:  req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBlogResponse(blog))
}

// Get handles GET /blogs/:id.
//
// @Summary      Get a post by id
// @Tags         blogs
// @Produce      json
// @Param        id  path      string  true  "Post id"
// @Success      200  {object}  blogResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := blogID(c)
	if err != nil {
		return err
	}

	blog, err := h.service.Get(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBlogResponse(blog))
}

// Update handles PUT /blogs/:id.
//
// @Summary      Update a post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updateBlogRequest  true  "Updated post"
// @Success      200   {object}  blogResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := blogID(c)
	if err != nil {
		return err
	}

	var req updateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	blog, err := h.service.Update(c.Request().Context(), ports.UpdateBlogInput{
		ID:      id,
		OwnerID: userID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Status:  req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBlogResponse(blog))
}

// Delete handles DELETE /blogs/:id.
//
// @Summary      Delete a post
// @Tags         blogs
// @Produce      json
// @Param        id  path      string  true  "Post id"
// @Success      200  {object}  deleteBlogResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := blogID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteBlogResponse{Success: true, Message: "blog deleted"})
}

// Activity handles GET /blogs/:id/activity.
//
// @Summary      Get a post's audit trail
// @Tags         blogs
// @Produce      json
// @Param        id  path      string  true  "Post id"
// @Success      200  {object}  activityResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /blogs/{id}/activity [get]
func (h *BlogHandler) Activity(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := blogID(c)
	if err != nil {
		return err
	}

	// Ownership check first: a foreign post must read as not found before
	// any history is revealed.
	if _, err := h.service.Get(c.Request().Context(), id, userID); err != nil {
		return err
	}

	events, err := h.activity.History(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toActivityResponse(id, events))
}
