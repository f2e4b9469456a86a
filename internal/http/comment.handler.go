package http

import (
	"errors"
	"net/http"
	"os"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/datamaphq/datamap/internal/services"
	"github.com/datamaphq/datamap/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetComments(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		var comments []entity.Comment
		if err := ctx.DB.Preload("Badges").
			Where("data_product_id = ?", productID).
			Order("created_at DESC").
			Find(&comments).Error; err != nil {
			ctx.Logger.Error("Failed to get comments", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comments"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"comments": comments})
	}
}

func CreateComment(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data product ID"})
			return
		}

		type createCommentRequest struct {
			Content string `json:"content" binding:"required"`
		}

		var request createCommentRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is required"})
			return
		}

		user, err := utils.CurrentUser(ctx, c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var product entity.DataProduct
		if err := ctx.DB.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Data product not found"})
				return
			}
			ctx.Logger.Error("Failed to get data product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get data product"})
			return
		}

		comment := entity.Comment{
			DataProductID: productID,
			AuthorName:    user.Name,
			Content:       request.Content,
		}

		if err := ctx.DB.Create(&comment).Error; err != nil {
			ctx.Logger.Error("Failed to create comment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
			return
		}

		notifyProductOwner(ctx, &product, &comment)

		c.JSON(http.StatusCreated, comment)
	}
}

// notifyProductOwner emails the owner about a new comment when SendGrid is
// configured. Failures are logged only; the comment is already persisted.
func notifyProductOwner(ctx *appcontext.Context, product *entity.DataProduct, comment *entity.Comment) {
	if os.Getenv("SENDGRID_API_KEY") == "" || product.OwnerID == nil {
		return
	}

	var owner entity.User
	if err := ctx.DB.First(&owner, "id = ?", *product.OwnerID).Error; err != nil {
		ctx.Logger.Warn("Failed to resolve product owner for notification", zap.Error(err))
		return
	}
	if owner.Email == "" || owner.Name == comment.AuthorName {
		return
	}

	if err := services.SendCommentNotificationEmail(owner.Email, comment.AuthorName, product.Name); err != nil {
		ctx.Logger.Warn("Failed to send comment notification", zap.Error(err))
	}
}

// AddCommentReaction records one reaction per (comment, type, user). The
// insert relies on the composite unique index: ON CONFLICT DO NOTHING with
// zero rows affected means the reaction already exists, answered as 409
// without touching the counter.
func AddCommentReaction(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		commentID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
			return
		}

		type addReactionRequest struct {
			Type string `json:"type" binding:"required"`
		}

		var request addReactionRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reaction type is required"})
			return
		}

		if !entity.ValidReactionType(request.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reaction type must be like, helpful or insightful"})
			return
		}

		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var comment entity.Comment
		if err := ctx.DB.First(&comment, "id = ?", commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
				return
			}
			ctx.Logger.Error("Failed to get comment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comment"})
			return
		}

		duplicate := false
		err = ctx.DB.Transaction(func(tx *gorm.DB) error {
			reaction := entity.CommentReaction{
				CommentID:      commentID,
				Type:           request.Type,
				UserIdentifier: userID.String(),
			}

			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&reaction)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				duplicate = true
				return nil
			}

			column := reactionCounterColumn(request.Type)
			if err := tx.Model(&entity.Comment{}).
				Where("id = ?", commentID).
				UpdateColumn(column, gorm.Expr(column+" + 1")).Error; err != nil {
				return err
			}

			return tx.First(&comment, "id = ?", commentID).Error
		})
		if err != nil {
			ctx.Logger.Error("Failed to add reaction", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add reaction"})
			return
		}

		if duplicate {
			c.JSON(http.StatusConflict, gin.H{"error": "Reaction already recorded"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"reactions": gin.H{
				"like":       comment.LikeCount,
				"helpful":    comment.HelpfulCount,
				"insightful": comment.InsightfulCount,
			},
		})
	}
}

func reactionCounterColumn(reactionType string) string {
	switch reactionType {
	case entity.ReactionTypeLike:
		return "like_count"
	case entity.ReactionTypeHelpful:
		return "helpful_count"
	default:
		return "insightful_count"
	}
}
