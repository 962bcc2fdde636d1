package deps

import (
	"context"
	"fmt"
	"jobboard/internal/config"
	"jobboard/internal/core/domain/account"
	dl "jobboard/internal/core/domain/logging"
	drl "jobboard/internal/core/domain/rate_limiter"
	dbaccount "jobboard/internal/db/account"
	"jobboard/internal/implementations/email"
	"jobboard/internal/implementations/logging"
	passwordhasher "jobboard/internal/implementations/password_hasher"
	ratelimiter "jobboard/internal/implementations/rate_limiter"
	tokengenerator "jobboard/internal/implementations/token_generator"
	"jobboard/internal/rabbitmq"
	outboundemail "jobboard/internal/rabbitmq/publishers/outbound_email"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	AccountRepository account.Repository

	RateLimiter drl.RateLimiter

	EmailSender *email.Sender

	TokenGenerator          account.TokenGenerator
	PasswordHasher          account.PasswordHasher
	ResetTokenSender        account.ResetTokenSender
	VerificationTokenSender account.VerificationTokenSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.AccountRepository = dbaccount.NewPgxRepository(deps.DB)

	deps.EmailSender = email.NewSender(
		deps.AwsConfig,
		deps.Config.EmailSender,
		deps.Config.PasswordResetBaseURL,
		deps.Config.EmailVerificationBaseURL,
	)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.TokenGenerator = tokengenerator.NewGenerator()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)

	closeOutboundEmailPublisher := deps.initOutboundEmailPublisher()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeOutboundEmailPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initOutboundEmailPublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	_, err = rabbitmqChannel.QueueDeclare(deps.Config.OutboundEmailQueue, true, false, false, false, nil)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	publisher := outboundemail.NewRabbitMQ(deps.Logger, rabbitmqChannel, deps.Config.OutboundEmailQueue)
	deps.ResetTokenSender = publisher
	deps.VerificationTokenSender = publisher

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down outbound email publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Outbound email publisher shut down.")
	}
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
