package container

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/config"
	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
	"github.com/oksasatya/courseitda/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons. Optional components stay nil.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	store       repository.Store
	hub         *event.Hub
	redisClient *redis.Client
	kv          application.KeyValueStore

	hasher application.PasswordHasher
	tokens application.TokenCodec

	searcher application.PlaceSearcher
	index    application.PlaceIndex
	uploader application.ObjectUploader
	jobs     application.JobPublisher

	checks = map[string]func(context.Context) error{}
)

func SetConfig(c *config.Config)                   { cfg = c }
func GetConfig() *config.Config                    { return cfg }
func SetLogger(l *logrus.Logger)                   { logger = l }
func GetLogger() *logrus.Logger                    { return logger }
func SetStore(s repository.Store)                  { store = s }
func GetStore() repository.Store                   { return store }
func SetHub(h *event.Hub)                          { hub = h }
func GetHub() *event.Hub                           { return hub }
func SetRedis(r *redis.Client)                     { redisClient = r }
func GetRedis() *redis.Client                      { return redisClient }
func SetKV(k application.KeyValueStore)            { kv = k }
func GetKV() application.KeyValueStore             { return kv }
func SetSearcher(s application.PlaceSearcher)      { searcher = s }
func GetSearcher() application.PlaceSearcher       { return searcher }
func SetPlaceIndex(i application.PlaceIndex)       { index = i }
func GetPlaceIndex() application.PlaceIndex        { return index }
func SetUploader(u application.ObjectUploader)     { uploader = u }
func GetUploader() application.ObjectUploader      { return uploader }
func SetJobs(j application.JobPublisher)           { jobs = j }
func GetJobs() application.JobPublisher            { return jobs }
func SetHasher(h application.PasswordHasher)       { hasher = h }
func SetTokens(t application.TokenCodec)           { tokens = t }

func GetHasher() application.PasswordHasher {
	if hasher != nil {
		return hasher
	}
	return helpers.MockHasher{}
}

func GetTokens() application.TokenCodec {
	if tokens != nil {
		return tokens
	}
	return helpers.MockTokenCodec{}
}

// AddCheck registers a dependency probe for the health endpoint.
func AddCheck(name string, fn func(ctx context.Context) error) { checks[name] = fn }

func GetChecks() map[string]func(context.Context) error { return checks }
