package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/user-order-service/config"
	"github.com/oksasatya/user-order-service/pkg/helpers"
)

// app-level container to share constructed infrastructure across packages.
// The router auto-wires modules from these singletons; optional pieces stay nil when disabled.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	mongoClient *mongo.Client
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	tokenManager *helpers.TokenManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config)    { cfg = c }
func GetConfig() *config.Config     { return cfg }
func SetLogger(l *logrus.Logger)    { logger = l }
func GetLogger() *logrus.Logger     { return logger }
func SetMongo(c *mongo.Client)      { mongoClient = c }
func GetMongo() *mongo.Client       { return mongoClient }
func SetPGPool(p *pgxpool.Pool)     { pgPool = p }
func GetPGPool() *pgxpool.Pool      { return pgPool }
func SetRedis(r *redis.Client)      { redisClient = r }
func GetRedis() *redis.Client       { return redisClient }
func SetGCS(s *storage.Client)      { gcsClient = s }
func GetGCS() *storage.Client       { return gcsClient }
func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

// SetTokenManager installs the bearer token manager; nil leaves mutating routes open.
func SetTokenManager(m *helpers.TokenManager) { tokenManager = m }
func GetTokenManager() *helpers.TokenManager  { return tokenManager }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
