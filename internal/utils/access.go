package utils

import (
	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrentUser resolves the authenticated user from the request claims.
func CurrentUser(ctx *appcontext.Context, c *gin.Context) (entity.User, error) {
	var user entity.User

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return user, err
	}

	if err := ctx.DB.First(&user, "id = ?", userID).Error; err != nil {
		return user, err
	}

	return user, nil
}

// UserManagesProduct reports whether the user owns the product or is an admin.
func UserManagesProduct(ctx *appcontext.Context, userID uuid.UUID, productID uuid.UUID) bool {
	var user entity.User
	if err := ctx.DB.First(&user, "id = ?", userID).Error; err != nil {
		return false
	}
	if user.Role == "admin" {
		return true
	}

	var product entity.DataProduct
	if err := ctx.DB.First(&product, "id = ?", productID).Error; err != nil {
		return false
	}

	return product.OwnerID != nil && *product.OwnerID == userID
}
