package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car-blog/cmd/api/dto"
	"car-blog/cmd/api/services"
)

// AdminListUsersHandler godoc
// @Summary      List users for admin
// @Description  Lists every account. Requires a token with the admin role.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.UserProfileDTO}
// @Failure      401  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /admin/users [get]
func AdminListUsersHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := authSvc.ListUsers(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK("Users fetched successfully", users))
	}
}
