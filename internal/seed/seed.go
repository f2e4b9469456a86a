package seed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/datamaphq/datamap/internal/utils"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Run provisions the demo catalog: sample products, their default lineage
// chains, metric templates and definitions, a month of observations and a
// few comments. It replaces the old lazy-seed-on-first-read behavior and is
// safe to run repeatedly; existing rows are left alone.
func Run(ctx *appcontext.Context) error {
	if err := EnsureMetricTemplates(ctx.DB); err != nil {
		return fmt.Errorf("failed to seed metric templates: %w", err)
	}

	steward, err := ensureDemoSteward(ctx.DB)
	if err != nil {
		return fmt.Errorf("failed to seed demo steward: %w", err)
	}

	for _, sample := range sampleProducts {
		product, created, err := ensureProduct(ctx.DB, sample, steward)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", sample.name, err)
		}

		if err := EnsureDefaultLineage(ctx.DB, product); err != nil {
			return fmt.Errorf("failed to seed lineage for %q: %w", sample.name, err)
		}

		if created {
			if err := seedQualityMetrics(ctx.DB, product); err != nil {
				return fmt.Errorf("failed to seed metrics for %q: %w", sample.name, err)
			}
			if err := seedComments(ctx.DB, product); err != nil {
				return fmt.Errorf("failed to seed comments for %q: %w", sample.name, err)
			}
			if err := utils.IndexProduct(ctx, &product); err != nil {
				ctx.Logger.Warn("Failed to index seeded product", zap.Error(err))
			}
		}
	}

	ctx.Logger.Info("Demo catalog provisioned", zap.Int("products", len(sampleProducts)))
	return nil
}

type sampleProduct struct {
	name            string
	description     string
	domain          string
	tags            []string
	sla             string
	updateFrequency string
}

var sampleProducts = []sampleProduct{
	{
		name:            "customer_360",
		description:     "Unified customer profile combining CRM, billing and support data",
		domain:          "customer",
		tags:            []string{"crm", "golden-record", "pii"},
		sla:             "99.9%",
		updateFrequency: "hourly",
	},
	{
		name:            "orders_daily",
		description:     "Daily order fact table with fulfillment status",
		domain:          "commerce",
		tags:            []string{"orders", "finance"},
		sla:             "99.5%",
		updateFrequency: "daily",
	},
	{
		name:            "web_events",
		description:     "Clickstream events from the storefront",
		domain:          "marketing",
		tags:            []string{"events", "behavioral"},
		sla:             "99.0%",
		updateFrequency: "streaming",
	},
}

func ensureDemoSteward(db *gorm.DB) (entity.User, error) {
	var user entity.User
	err := db.Where(entity.User{Email: "steward@datamap.local"}).
		Attrs(entity.User{Name: "Demo Steward", Role: "steward", Status: "active"}).
		FirstOrCreate(&user).Error
	return user, err
}

func ensureProduct(db *gorm.DB, sample sampleProduct, owner entity.User) (entity.DataProduct, bool, error) {
	var product entity.DataProduct
	err := db.Where("name = ?", sample.name).First(&product).Error
	if err == nil {
		return product, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return product, false, err
	}

	tags, err := json.Marshal(sample.tags)
	if err != nil {
		return product, false, err
	}

	product = entity.DataProduct{
		Name:            sample.name,
		Description:     sample.description,
		Owner:           owner.Name,
		OwnerID:         &owner.ID,
		Domain:          sample.domain,
		Tags:            datatypes.JSON(tags),
		SLA:             sample.sla,
		UpdateFrequency: sample.updateFrequency,
	}
	if err := db.Create(&product).Error; err != nil {
		return product, false, err
	}
	return product, true, nil
}

// EnsureDefaultLineage creates the 3-node chain for a product that has no
// lineage yet. Products with existing nodes are untouched.
func EnsureDefaultLineage(db *gorm.DB, product entity.DataProduct) error {
	var nodeCount int64
	if err := db.Model(&entity.LineageNode{}).Where("data_product_id = ?", product.ID).Count(&nodeCount).Error; err != nil {
		return err
	}
	if nodeCount > 0 {
		return nil
	}

	nodes, edges := utils.DefaultLineageChain(product)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&nodes).Error; err != nil {
			return err
		}
		return tx.Create(&edges).Error
	})
}

// EnsureMetricTemplates creates the built-in metric templates once.
func EnsureMetricTemplates(db *gorm.DB) error {
	templates := []entity.MetricTemplate{
		{
			Name:    "Row completeness",
			Type:    entity.MetricTypeCompleteness,
			Formula: "100 * count(non_null_rows) / count(rows)",
		},
		{
			Name:    "Value accuracy",
			Type:    entity.MetricTypeAccuracy,
			Formula: "100 * count(valid_values) / count(values)",
		},
		{
			Name:    "Freshness",
			Type:    entity.MetricTypeTimeliness,
			Formula: "100 - minutes_since_last_update / sla_minutes * 100",
		},
		{
			Name:    "Cross-source consistency",
			Type:    entity.MetricTypeConsistency,
			Formula: "100 * count(matching_rows) / count(rows)",
		},
	}

	for i := range templates {
		if err := db.Where(entity.MetricTemplate{Name: templates[i].Name}).
			Attrs(templates[i]).
			FirstOrCreate(&templates[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedQualityMetrics(db *gorm.DB, product entity.DataProduct) error {
	var templates []entity.MetricTemplate
	if err := db.Order("name").Find(&templates).Error; err != nil {
		return err
	}

	// A shallow upward drift so the demo stewardship score registers a
	// quality improvement.
	values := []float64{92.5, 91.8, 93.1, 94.0, 94.6, 95.2, 96.0}
	now := time.Now().UTC()

	for _, template := range templates {
		definition := entity.MetricDefinition{
			DataProductID: product.ID,
			TemplateID:    &template.ID,
			Name:          fmt.Sprintf("%s %s", product.Name, template.Type),
			Type:          template.Type,
			Query:         template.Formula,
			Threshold:     90,
		}
		if err := db.Create(&definition).Error; err != nil {
			return err
		}

		observations := make([]entity.QualityMetric, 0, len(values))
		for i, value := range values {
			observations = append(observations, entity.QualityMetric{
				DataProductID:      product.ID,
				MetricDefinitionID: definition.ID,
				Value:              value,
				Timestamp:          now.AddDate(0, 0, i-len(values)),
			})
		}
		if err := db.Create(&observations).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedComments(db *gorm.DB, product entity.DataProduct) error {
	comment := entity.Comment{
		DataProductID: product.ID,
		AuthorName:    "Demo Steward",
		Content:       fmt.Sprintf("Documented the refresh schedule for %s.", product.Name),
	}
	if err := db.Create(&comment).Error; err != nil {
		return err
	}

	badge := entity.CommentBadge{
		CommentID: comment.ID,
		Type:      entity.BadgeTypeQuality,
	}
	return db.Create(&badge).Error
}
