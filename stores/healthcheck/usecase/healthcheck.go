package usecase

import (
	"time"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/env"
	"github.com/parodee/goapi/domain/healthcheck"
)

type HealthcheckUsecaseCfg struct {
	// DataSource names the active raw-record source, opensea or static
	DataSource string
}

type impl struct {
	dataSource string
	startedAt  time.Time
}

func New(cfg *HealthcheckUsecaseCfg) healthcheck.Usecase {
	return &impl{
		dataSource: cfg.DataSource,
		startedAt:  time.Now(),
	}
}

func (im *impl) Check(c bCtx.Ctx) *healthcheck.Health {
	return &healthcheck.Health{
		App:        env.AppName(),
		UptimeSecs: int64(time.Since(im.startedAt).Seconds()),
		DataSource: im.dataSource,
	}
}
