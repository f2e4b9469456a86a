package http

import (
	"net/http"
	"time"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/datamaphq/datamap/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stewardshipBadge struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CommentID   uuid.UUID `json:"comment_id"`
	AwardedAt   time.Time `json:"awarded_at"`
}

type stewardshipActivity struct {
	CommentID     uuid.UUID `json:"comment_id"`
	DataProductID uuid.UUID `json:"data_product_id"`
	Content       string    `json:"content"`
	ImpactScore   int       `json:"impact_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetStewardshipMetrics computes the reputation summary for the
// authenticated user from comment, badge, product and quality-metric counts.
func GetStewardshipMetrics(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.CurrentUser(ctx, c)
		if err != nil {
			ctx.Logger.Error("Failed to resolve current user", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var helpfulComments int64
		if err := ctx.DB.Model(&entity.Comment{}).
			Where("author_name = ? AND helpful_count > 0", user.Name).
			Count(&helpfulComments).Error; err != nil {
			ctx.Logger.Error("Failed to count helpful comments", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stewardship metrics"})
			return
		}

		var badges []entity.CommentBadge
		if err := ctx.DB.
			Joins("JOIN comments ON comments.id = comment_badges.comment_id").
			Where("comments.author_name = ?", user.Name).
			Find(&badges).Error; err != nil {
			ctx.Logger.Error("Failed to get badges", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stewardship metrics"})
			return
		}

		var managedProducts int64
		if err := ctx.DB.Model(&entity.DataProduct{}).
			Where("owner_id = ?", user.ID).
			Count(&managedProducts).Error; err != nil {
			ctx.Logger.Error("Failed to count managed products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stewardship metrics"})
			return
		}

		var observations []entity.QualityMetric
		if err := ctx.DB.
			Joins("JOIN data_products ON data_products.id = quality_metrics.data_product_id").
			Where("data_products.owner_id = ?", user.ID).
			Order("quality_metrics.timestamp ASC").
			Find(&observations).Error; err != nil {
			ctx.Logger.Error("Failed to get quality observations", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stewardship metrics"})
			return
		}

		counts := utils.StewardshipCounts{
			HelpfulComments:  int(helpfulComments),
			Badges:           len(badges),
			ImprovedProducts: utils.CountImprovedProducts(observations),
			ManagedProducts:  int(managedProducts),
		}
		score := utils.ReputationScore(counts)

		badgeList := make([]stewardshipBadge, 0, len(badges))
		for _, badge := range badges {
			badgeList = append(badgeList, stewardshipBadge{
				Type:        badge.Type,
				Description: utils.BadgeDescription(badge.Type),
				CommentID:   badge.CommentID,
				AwardedAt:   badge.CreatedAt,
			})
		}

		var recentComments []entity.Comment
		if err := ctx.DB.Where("author_name = ?", user.Name).
			Order("created_at DESC").
			Limit(5).
			Find(&recentComments).Error; err != nil {
			ctx.Logger.Error("Failed to get recent comments", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stewardship metrics"})
			return
		}

		activity := make([]stewardshipActivity, 0, len(recentComments))
		for _, comment := range recentComments {
			activity = append(activity, stewardshipActivity{
				CommentID:     comment.ID,
				DataProductID: comment.DataProductID,
				Content:       comment.Content,
				ImpactScore:   10,
				CreatedAt:     comment.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"reputationScore": score,
			"level":           utils.ReputationLevel(score),
			"counts": gin.H{
				"helpfulComments":  counts.HelpfulComments,
				"badges":           counts.Badges,
				"improvedProducts": counts.ImprovedProducts,
				"managedProducts":  counts.ManagedProducts,
			},
			"badges":         badgeList,
			"recentActivity": activity,
		})
	}
}
