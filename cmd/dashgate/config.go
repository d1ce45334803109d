package main

import (
	"github.com/paylens/dashgate/core/cookie"
	"github.com/paylens/dashgate/core/gate"
	"github.com/paylens/dashgate/core/server"
	"github.com/paylens/dashgate/core/session"
	"github.com/paylens/dashgate/integration/database/pg"
	"github.com/paylens/dashgate/integration/database/redis"
	"github.com/paylens/dashgate/middleware"
)

type appConfig struct {
	AppName     string `env:"APP_NAME" envDefault:"dashgate"`
	Development bool   `env:"APP_DEV" envDefault:"false"`

	Server    server.Config
	Cookie    cookie.Config
	Session   session.Config
	Validator gate.HTTPValidatorConfig
	Routes    middleware.RouteGuardConfig
	DB        pg.Config
	Redis     redis.Config
}
