package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/server"
	"github.com/abhisek/shindan/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			e.cfg.Server.Addr = addr
		}

		results, err := e.resultRepo(ctx)
		if err != nil {
			e.log.Warn("result store unavailable; result endpoints will return 503", zap.Error(err))
			results = nil
		}
		svc, err := e.adviceService(ctx)
		if err != nil {
			return fmt.Errorf("configure advice: %w", err)
		}

		metrics := telemetry.NewMetrics(true)
		srv := server.New(server.Deps{
			Data:     e.data,
			Selector: e.newSelector(metrics),
			Results:  results,
			Advice:   svc,
			Metrics:  metrics,
			Logger:   e.log,
			Version:  version,
		}, e.cfg.Server.Mode)

		return srv.Run(ctx, e.cfg.Server.Addr, e.cfg.Server.ShutdownTimeout)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
