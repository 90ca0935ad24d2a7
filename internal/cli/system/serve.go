package system

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/config"
	"github.com/julianstephens/moodlit/internal/server"
)

type ServeCmd struct {
	Addr    string   `help:"Listen address. Defaults to MOODLIT_ADDR or 127.0.0.1:8787."`
	Origins []string `help:"Allowed CORS origins. Defaults to MOODLIT_ALLOWED_ORIGINS."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	cfg := config.Load()
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if len(c.Origins) > 0 {
		cfg.AllowedOrigins = c.Origins
	}

	j, err := ctx.Journal()
	if err != nil {
		return err
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, j, settings, server.WithPersister(ctx.Syncer()))
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving moodlit on http://%s\n", cfg.Addr)
	return srv.Run(sigCtx)
}
