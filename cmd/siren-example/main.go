package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

type options struct {
	Addr     string
	BaseURL  string
	LogLevel logrus.Level
	PageSize int
	Orders   int
}

func parseFlags(w io.Writer, args ...string) (*options, error) {
	flags := pflag.NewFlagSet("siren-example", pflag.ContinueOnError)
	flags.SetOutput(w)

	addr := flags.String("addr", "127.0.0.1:3000", "the address to listen on")
	baseURL := flags.String("base-url", "http://api.x.io", "the url prefix used for links in documents")
	logLevel := flags.String("log-level", "info", "the minimum level of log messages (debug, info, warn, error)")
	pageSize := flags.Int("page-size", 10, "the default number of orders per page")
	orders := flags.Int("orders", 100, "the number of orders to seed the store with")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		return nil, errors.Wrap(err, "invalid --log-level")
	}
	if *pageSize < 1 {
		return nil, fmt.Errorf("--page-size must be positive")
	}
	if *orders < 0 {
		return nil, fmt.Errorf("--orders must not be negative")
	}

	return &options{
		Addr:     *addr,
		BaseURL:  strings.TrimSuffix(*baseURL, "/"),
		LogLevel: level,
		PageSize: *pageSize,
		Orders:   *orders,
	}, nil
}

func main() {
	opts, err := parseFlags(os.Stderr, os.Args[1:]...)
	if err != nil {
		if err != pflag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}

	logger := logrus.StandardLogger()
	logger.SetLevel(opts.LogLevel)

	api := NewAPI(NewStore(opts.Orders), opts.BaseURL, opts.PageSize, logger)
	accessLog := func(h http.Handler) http.Handler {
		return handlers.CombinedLoggingHandler(logger.WriterLevel(logrus.InfoLevel), h)
	}

	server := &http.Server{
		Addr:        opts.Addr,
		Handler:     api.Handler(accessLog),
		ReadTimeout: 2 * time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		logger.Info("signal caught. shutting down...")
		cancel()
	}()

	go func() {
		<-ctx.Done()
		// hijacked websocket connections aren't tracked by the server
		api.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error(err)
		}
	}()

	logger.Infof("listening at http://%v", opts.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error(err)
	}
}
