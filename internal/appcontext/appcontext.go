package appcontext

import (
	"cloud.google.com/go/storage"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// Context bundles the shared clients handed to every handler factory.
// The Meilisearch, Redis and GCS clients are optional and stay nil when the
// corresponding environment variable is unset; callers must nil-check them.
type Context struct {
	DB     *gorm.DB
	Logger *zap.Logger

	GCSClient     *storage.Client
	GCSBucketName string

	OAuth2Config      *oauth2.Config
	MeilisearchClient *meilisearch.Client
	RedisClient       *redis.Client
}
