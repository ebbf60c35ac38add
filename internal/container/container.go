package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"socialnet/config"
	"socialnet/internal/application"
	"socialnet/internal/infrastructure/gcs"
	"socialnet/internal/infrastructure/mail"
	"socialnet/internal/infrastructure/search"
	"socialnet/pkg/helpers"
	"socialnet/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager  *helpers.JWTManager
	phoneCipher *helpers.PhoneCipher

	mailgunClient *mailer.Mailgun
	rabbitPub     *helpers.RabbitPublisher
	esClient      *elasticsearch.Client

	mediaStore *gcs.MediaStore
	mailSender *mail.Sender
	userIndex  *search.UserIndex
	otpGen     *application.OTPGenerator
	rotation   *application.RotationScheduler
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetPhoneCipher(p *helpers.PhoneCipher) { phoneCipher = p }
func GetPhoneCipher() *helpers.PhoneCipher  { return phoneCipher }

func SetMailgun(m *mailer.Mailgun)            { mailgunClient = m }
func GetMailgun() *mailer.Mailgun             { return mailgunClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

func SetMediaStore(s *gcs.MediaStore) { mediaStore = s }
func GetMediaStore() *gcs.MediaStore  { return mediaStore }
func SetMailSender(s *mail.Sender)    { mailSender = s }
func GetMailSender() *mail.Sender     { return mailSender }
func SetUserIndex(x *search.UserIndex) { userIndex = x }
func GetUserIndex() *search.UserIndex  { return userIndex }

func SetOTPGenerator(g *application.OTPGenerator) { otpGen = g }
func GetOTPGenerator() *application.OTPGenerator  { return otpGen }
func SetRotation(r *application.RotationScheduler) { rotation = r }
func GetRotation() *application.RotationScheduler  { return rotation }
