package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/log"
	bValidator "github.com/parodee/goapi/base/validator"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/collectible"
	"github.com/parodee/goapi/domain/keys"
	mmiddleware "github.com/parodee/goapi/middleware"
	"github.com/parodee/goapi/service/cache"
	"github.com/parodee/goapi/service/cache/provider/primitive"
	"github.com/parodee/goapi/service/opensea"
	activity_delivery "github.com/parodee/goapi/stores/activity/delivery/http"
	activity_usecase "github.com/parodee/goapi/stores/activity/usecase"
	bid_delivery "github.com/parodee/goapi/stores/bid/delivery/http"
	bid_usecase "github.com/parodee/goapi/stores/bid/usecase"
	collectible_delivery "github.com/parodee/goapi/stores/collectible/delivery/http"
	collectible_repository "github.com/parodee/goapi/stores/collectible/repository"
	collectible_usecase "github.com/parodee/goapi/stores/collectible/usecase"
	hc_delivery "github.com/parodee/goapi/stores/healthcheck/delivery/http"
	hc_usecase "github.com/parodee/goapi/stores/healthcheck/usecase"
	wallet_delivery "github.com/parodee/goapi/stores/wallet/delivery/http"
	wallet_middleware "github.com/parodee/goapi/stores/wallet/delivery/http/middleware"
	wallet_usecase "github.com/parodee/goapi/stores/wallet/usecase"
)

func init() {
	configPath := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	// local overrides for secrets, ignored when the file is absent
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configPath)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init in-memory cache
	context.Info("init cache")
	cacheSizeMb := viper.GetInt("cache.sizeMb")
	cacheProvider := primitive.NewPrimitive("app", cacheSizeMb)
	collectionCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("cache.collectionTtl"),
		Pfx:   keys.PfxCollection,
		Cache: cacheProvider,
	})
	sessionCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("wallet.tokenTtl"),
		Pfx:   keys.PfxSession,
		Cache: cacheProvider,
	})
	bidCache := cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("cache.bidTtl"),
		Pfx:   keys.PfxBid,
		Cache: cacheProvider,
	})

	mmiddleware.SetupCache(viper.GetInt("http.cacheSizeMb"))

	// init opensea client
	openseaApiKey := viper.GetString("opensea.apikey")
	openseaTimeout := viper.GetDuration("opensea.timeout")
	openseaClient := opensea.NewClient(&opensea.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    openseaTimeout,
		Apikey:     openseaApiKey,
		BaseUrl:    viper.GetString("opensea.baseUrl"),
	})

	// collection allow list
	collectionsCfg := viper.Sub("collections")
	if collectionsCfg == nil {
		log.Log().Panic("config has no collections block, nothing to serve")
	}
	collections := make(map[string]collectible.CollectionInfo)
	for slug := range collectionsCfg.AllSettings() {
		collections[slug] = collectible.CollectionInfo{
			Slug:     slug,
			Contract: domain.Address(collectionsCfg.GetString(fmt.Sprintf("%s.contract", slug))).ToLower(),
			Chain:    domain.ChainName(collectionsCfg.GetString(fmt.Sprintf("%s.chain", slug))),
		}
	}

	// construct repository, usecase and delivery
	dataSource := viper.GetString("dataSource")
	var collectibleRepo collectible.Repo
	if dataSource == "static" {
		collectibleRepo = collectible_repository.NewStatic(viper.GetString("staticDir"))
	} else {
		dataSource = "opensea"
		collectibleRepo = collectible_repository.NewOpensea(openseaClient)
	}

	collectibleUC := collectible_usecase.New(&collectible_usecase.CollectibleUsecaseCfg{
		Repo:           collectibleRepo,
		Opensea:        openseaClient,
		Cache:          collectionCache,
		Collections:    collections,
		DefaultSlug:    viper.GetString("storefront.defaultSlug"),
		TraitAllowList: viper.GetStringSlice("storefront.traitAllowList"),
		PageSize:       viper.GetInt("storefront.pageSize"),
		MaxLimit:       viper.GetInt("storefront.maxLimit"),
		WindowSize:     viper.GetInt("storefront.windowSize"),
		EnrichLimit:    viper.GetInt("storefront.enrichLimit"),
	})
	activityUC := activity_usecase.New(&activity_usecase.ActivityUsecaseCfg{
		Opensea: openseaClient,
	})
	walletUC := wallet_usecase.New(&wallet_usecase.WalletUsecaseCfg{
		JwtSecret: viper.GetString("wallet.jwtSecret"),
		TokenTtl:  viper.GetDuration("wallet.tokenTtl"),
		Cache:     sessionCache,
	})
	bidUC := bid_usecase.New(&bid_usecase.BidUsecaseCfg{
		Cache: bidCache,
	})
	hcUC := hc_usecase.New(&hc_usecase.HealthcheckUsecaseCfg{
		DataSource: dataSource,
	})

	walletMiddleware := wallet_middleware.New(walletUC)
	cached := mmiddleware.CacheHttp(viper.GetDuration("http.cacheTtl"))

	hc_delivery.New(e, hcUC)
	collectible_delivery.New(e, collectibleUC, cached)
	activity_delivery.New(e, activityUC)
	wallet_delivery.New(e, walletUC)
	bid_delivery.New(e, bidUC, walletMiddleware.Auth())

	if viper.GetBool("storefront.warmUp") {
		go collectibleUC.WarmUp(ctx.WithValue(context, "requestID", "warmup"))
	}

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
