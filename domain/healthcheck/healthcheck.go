package healthcheck

import (
	bCtx "github.com/parodee/goapi/base/ctx"
)

// Health reports liveness plus which data source is active
type Health struct {
	App        string `json:"app"`
	UptimeSecs int64  `json:"uptimeSecs"`
	DataSource string `json:"dataSource"`
}

type Usecase interface {
	Check(c bCtx.Ctx) *Health
}
