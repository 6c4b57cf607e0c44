package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/style-gallery-api/internal/application"
	"github.com/oksasatya/style-gallery-api/pkg/response"
)

type DesignHandler struct {
	Social  *application.SocialService
	Designs *application.DesignService
	Logger  *logrus.Logger
}

func NewDesignHandler(social *application.SocialService, designs *application.DesignService, logger *logrus.Logger) *DesignHandler {
	return &DesignHandler{Social: social, Designs: designs, Logger: logger}
}

type addCommentRequest struct {
	Text string `json:"text"`
}

type createDesignForm struct {
	Title       string `form:"title" binding:"required,max=120"`
	Description string `form:"description" binding:"max=2000"`
	Category    string `form:"category" binding:"max=64"`
}

type searchQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

// ListComments GET /api/designs/:id/comment
func (h *DesignHandler) ListComments(c *gin.Context) {
	views, err := h.Social.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to get comments")
		return
	}
	comments := make([]commentJSON, 0, len(views))
	for _, v := range views {
		comments = append(comments, newComment(v))
	}
	response.Success(c, http.StatusOK, gin.H{
		"comments":      comments,
		"commentsCount": len(comments),
	}, "", nil)
}

// AddComment POST /api/designs/:id/comment {text}
func (h *DesignHandler) AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	added, err := h.Social.AddComment(c.Request.Context(), c.Param("id"), currentUser(c), req.Text)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to add comment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"comment":       newComment(added.Comment),
		"commentsCount": added.CommentsCount,
	}, "Comment added successfully", nil)
}

// Like POST /api/designs/:id/like
func (h *DesignHandler) Like(c *gin.Context) {
	st, err := h.Social.Like(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to process like/unlike")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"isLiked": st.IsLiked, "likesCount": st.LikesCount}, "Design liked successfully", nil)
}

// Unlike DELETE /api/designs/:id/like
func (h *DesignHandler) Unlike(c *gin.Context) {
	st, err := h.Social.Unlike(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to process like/unlike")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"isLiked": st.IsLiked, "likesCount": st.LikesCount}, "Design unliked successfully", nil)
}

// Share POST /api/designs/:id/share
func (h *DesignHandler) Share(c *gin.Context) {
	n, err := h.Social.Share(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to share design")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sharesCount": n}, "Design shared successfully", nil)
}

// Delete DELETE /api/designs/:id
func (h *DesignHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Social.DeleteDesign(c.Request.Context(), id, currentUser(c)); err != nil {
		respondError(c, h.Logger, err, "Failed to delete design")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"designId": id}, "Design deleted successfully", nil)
}

// Create POST /api/designs (multipart: title, description, category, image)
func (h *DesignHandler) Create(c *gin.Context) {
	var form createDesignForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}
	in := application.CreateDesignInput{
		OwnerID:     currentUser(c),
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
	}
	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid image upload", nil)
			return
		}
		defer f.Close()
		in.Image = f
		in.ImageName = fh.Filename
		in.ImageContentType = fh.Header.Get("Content-Type")
	}

	d, err := h.Designs.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to create design")
		return
	}
	response.Success(c, http.StatusCreated, newDesign(d, nil), "Design created successfully", nil)
}

// List GET /api/designs?limit=&offset=
func (h *DesignHandler) List(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	ds, err := h.Designs.List(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to list designs")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"designs": newDesigns(ds)}, "", gin.H{"limit": q.Limit, "offset": q.Offset})
}

// Get GET /api/designs/:id
func (h *DesignHandler) Get(c *gin.Context) {
	d, owner, err := h.Designs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to get design")
		return
	}
	response.Success(c, http.StatusOK, newDesign(d, owner), "", nil)
}

// Search GET /api/designs/search?q=
func (h *DesignHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	ds, err := h.Designs.Search(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to search designs")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"designs": newDesigns(ds)}, "", nil)
}
