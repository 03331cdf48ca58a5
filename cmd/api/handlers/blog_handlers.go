package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car-blog/cmd/api/dto"
	"car-blog/cmd/api/services"
)

// multipartOverhead is allowed on top of the image size limit for form
// fields and part headers.
const multipartOverhead int64 = 1 << 20

// BlogHandlerOptions configures request decoding.
type BlogHandlerOptions struct {
	// MaxImageSize is the upload limit. Bodies beyond it plus
	// multipartOverhead are rejected while reading.
	MaxImageSize int64
}

// readBlogWrite decodes multipart or JSON blog fields plus any uploaded files.
func readBlogWrite(c *gin.Context, opts BlogHandlerOptions) (services.BlogWrite, error) {
	in := services.BlogWrite{Token: tokenFrom(c)}
	if opts.MaxImageSize > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, opts.MaxImageSize+multipartOverhead)
	}

	var req dto.BlogRequest
	if err := c.ShouldBind(&req); err != nil {
		return in, bindError(err)
	}
	in.Fields = services.BlogInput{
		Title:       req.Title,
		Description: req.Description,
		Model:       req.Model,
		Year:        req.Year,
	}
	in.Form = c.Request.MultipartForm
	return in, nil
}

// CreateBlogHandler godoc
// @Summary      Create a blog
// @Description  Creates a car blog owned by the caller. Accepts multipart/form-data with an optional single image (jpeg, png or gif, at most 5 MiB) under "image". Missing or malformed fields are rejected with 403.
// @Tags         blogs
// @Accept       multipart/form-data
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Description"
// @Param        model        formData  string  true   "Car model"
// @Param        year         formData  int     true   "Model year"
// @Param        image        formData  file    false  "Image"
// @Success      201  {object}  dto.Envelope{data=dto.BlogDTO}
// @Failure      401  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      413  {object}  dto.Envelope
// @Failure      415  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /blog/blogs [post]
func CreateBlogHandler(svc *services.BlogService, opts BlogHandlerOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, err := readBlogWrite(c, opts)
		// A missing credential is reported before anything about the body.
		// Undecodable fields count as missing ones; both precede credential
		// verification, as does an oversized body.
		if err != nil && in.Token != "" {
			if svcErr := services.AsError(err); svcErr.Code == dto.CodeValidationFailed {
				svcErr.Status = http.StatusForbidden
			}
			respondError(c, err)
			return
		}

		blog, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.OK("Blog created successfully", blog))
	}
}

// ListBlogsHandler godoc
// @Summary      List blogs
// @Description  Lists every blog, newest first. An empty collection is reported as 404.
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.BlogDTO}
// @Failure      404  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /blog/blogs [get]
func ListBlogsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogs, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK("Blogs fetched successfully", blogs))
	}
}

// ListMyBlogsHandler godoc
// @Summary      List my blogs
// @Description  Lists the caller's blogs. No blogs is an empty array.
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.BlogDTO}
// @Failure      401  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /blog/my-blogs [get]
func ListMyBlogsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogs, err := svc.ListByOwner(c.Request.Context(), tokenFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK("Blogs retrieved successfully", blogs))
	}
}

// GetBlogHandler godoc
// @Summary      Get blog by id
// @Tags         blogs
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.BlogDTO}
// @Failure      404  {object}  dto.Envelope
// @Router       /blog/blogs/{id} [get]
func GetBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blog, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK("Blog fetched successfully", blog))
	}
}

// UpdateBlogHandler godoc
// @Summary      Update a blog
// @Description  Overwrites title, description, model and year. A new image replaces the stored path.
// @Tags         blogs
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      string  true   "ObjectID"
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Description"
// @Param        model        formData  string  true   "Car model"
// @Param        year         formData  int     true   "Model year"
// @Param        image        formData  file    false  "Image"
// @Success      200  {object}  dto.Envelope{data=dto.BlogDTO}
// @Failure      400  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Failure      413  {object}  dto.Envelope
// @Failure      415  {object}  dto.Envelope
// @Router       /blog/blogs/{id} [put]
func UpdateBlogHandler(svc *services.BlogService, opts BlogHandlerOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, err := readBlogWrite(c, opts)
		if err != nil {
			respondError(c, err)
			return
		}

		blog, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK("Blog updated successfully", blog))
	}
}

// DeleteBlogHandler godoc
// @Summary      Delete a blog
// @Description  Deletes the blog and its image file.
// @Tags         blogs
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /blog/blogs/{id} [delete]
func DeleteBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id"), tokenFrom(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK("Blog deleted successfully", nil))
	}
}
