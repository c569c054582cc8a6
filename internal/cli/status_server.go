package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/litwise-books/internal/database"
	"github.com/mrlokans/litwise-books/internal/database/books"
	apphttp "github.com/mrlokans/litwise-books/internal/http"
)

// StatusServerCmd serves /health and /books/stats until interrupted.
type StatusServerCmd struct {
	Host string `help:"Listen host. Overrides HOST."`
	Port int    `help:"Listen port. Overrides PORT."`
}

func (c *StatusServerCmd) Addr(env *Env) string {
	host := env.Config.HTTP.Host
	if c.Host != "" {
		host = c.Host
	}
	port := int(env.Config.HTTP.Port)
	if c.Port > 0 {
		port = c.Port
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func (c *StatusServerCmd) Run(env *Env) error {
	db, err := database.NewDatabase(env.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	gin.SetMode(gin.ReleaseMode)
	router := apphttp.NewRouter(apphttp.RouterConfig{
		Database: db,
		Books:    books.NewRepository(db.DB),
		Version:  env.Version,
	})

	return apphttp.Serve(env.Ctx, c.Addr(env), router)
}
