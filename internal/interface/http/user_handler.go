package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/style-gallery-api/internal/application"
	"github.com/oksasatya/style-gallery-api/pkg/response"
)

type UserHandler struct {
	Social *application.SocialService
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewUserHandler(social *application.SocialService, auth *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Social: social, Auth: auth, Logger: logger}
}

func followData(st application.FollowStatus) gin.H {
	return gin.H{
		"isFollowing":    st.IsFollowing,
		"followersCount": st.FollowersCount,
		"followingCount": st.FollowingCount,
	}
}

// Follow POST /api/users/:id/follow
func (h *UserHandler) Follow(c *gin.Context) {
	st, err := h.Social.Follow(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to process follow/unfollow")
		return
	}
	response.Success(c, http.StatusOK, followData(st), "User followed successfully", nil)
}

// Unfollow DELETE /api/users/:id/follow
func (h *UserHandler) Unfollow(c *gin.Context) {
	st, err := h.Social.Unfollow(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to process follow/unfollow")
		return
	}
	response.Success(c, http.StatusOK, followData(st), "User unfollowed successfully", nil)
}

// Profile GET /api/users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.Auth.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to get user")
		return
	}
	response.Success(c, http.StatusOK, newProfile(u, false), "", nil)
}
