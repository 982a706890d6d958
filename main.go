package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/expense-tracker/api"
	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/notify"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/scheduler"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/session"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

func main() {
	logrus.Info("expense-tracker starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger, err := logging.SetupLogging(envConfig.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("logging.SetupLogging")
		return
	}

	if err := run(envConfig, logger); err != nil {
		logger.WithError(err).Error("expense-tracker stopped with error")
		os.Exit(1)
	}
	logger.Info("expense-tracker stopped")
}

func run(envConfig *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbStorage, err := storage.NewStorage(envConfig, logger)
	if err != nil {
		return err
	}
	defer dbStorage.Close()

	sinks := notify.Multi{notify.NewLogSink(logger)}
	if envConfig.AMQPURL != "" {
		amqpSink, err := notify.NewAMQPSink(envConfig.AMQPURL, envConfig.AMQPExchange, envConfig.AMQPQueue)
		if err != nil {
			return err
		}
		defer amqpSink.Close()
		sinks = append(sinks, amqpSink)
	}

	sessions := session.NewManager(dbStorage, sinks, logger, session.Options{
		SeedDemoData: envConfig.SeedDemoData,
	})

	delegator := operator.NewOperatorDelegator(sessions, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	authenticator, err := auth.NewStaticAuthenticator(envConfig.DemoEmail, envConfig.DemoPassword, envConfig.DemoName)
	if err != nil {
		return err
	}
	tokens := auth.NewTokens(envConfig.JWTSecret, auth.DefaultTokenTTL, nil)

	svc := service.NewService(dbStorage, sessions, delegator, authenticator, tokens, logger)

	rollover, err := scheduler.NewScheduler(envConfig.BudgetRolloverSchedule, sessions, delegator, logger)
	if err != nil {
		return err
	}
	rollover.Start()
	defer rollover.Stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.Port,
			Storage: dbStorage,
			Service: svc,
			Tokens:  tokens,
		}
		return httpRest.Serve(groupCtx)
	})

	return group.Wait()
}
