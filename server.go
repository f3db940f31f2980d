package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"log/syslog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/spf13/pflag"

	"github.com/erikbos/showgraph/collection"
	"github.com/erikbos/showgraph/imageresize"
	"github.com/erikbos/showgraph/muxnormalizer"
	"github.com/erikbos/showgraph/ogpage"
)

func main() {
	config, err := loadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	closeLog, err := setLogOutput(config.Logfile)
	if err != nil {
		log.Fatalf("error opening log: %v", err)
	}
	defer closeLog()
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collections := collection.New(&collection.Options{
		Collections: config.Collections,
	})

	handler, err := buildHandler(config, collections)
	if err != nil {
		log.Fatalf("building mux: %v", err)
	}

	collections.Init()
	go collections.Background(ctx, config.ScanInterval)

	addr := fmt.Sprintf(":%d", config.Listen.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if config.Listen.TlsCert != "" && config.Listen.TlsKey != "" {
		kpr, err := NewKeypairReloader(ctx, config.Listen.TlsCert, config.Listen.TlsKey)
		if err != nil {
			log.Fatalf("error loading keypair: %v", err)
		}
		srv.TLSConfig = &tls.Config{
			MinVersion:     tls.VersionTLS13,
			GetCertificate: kpr.GetCertificateFunc(),
		}
		log.Printf("Serving HTTPS on %s", addr)
		err = srv.ListenAndServeTLS("", "")
	} else {
		log.Printf("Serving HTTP on %s", addr)
		err = srv.ListenAndServe()
	}
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// buildHandler registers all routes and wraps them in the middleware.
func buildHandler(config *cfgMain, collections *collection.CollectionRepo) (http.Handler, error) {
	resizer := imageresize.New(imageresize.Options{
		Cachedir: config.Cachedir,
	})

	r := mux.NewRouter()
	pages := ogpage.New(&ogpage.Options{
		Collections:  collections,
		Resizer:      resizer,
		BaseURL:      config.BaseURL,
		SiteName:     config.SiteName,
		Locale:       config.Locale,
		DefaultImage: config.DefaultImage,
		ImageWidth:   config.Image.Width,
		ImageQuality: config.Image.Quality,
	})
	pages.RegisterHandlers(r)

	normalizer, err := muxnormalizer.New(r)
	if err != nil {
		return nil, err
	}
	return HttpLog(handlers.ProxyHeaders(normalizer.Middleware(r))), nil
}

// setLogOutput points the standard logger at logfile. The returned
// function closes the logfile, if any.
func setLogOutput(logfile string) (func(), error) {
	switch logfile {
	case "syslog":
		logw, err := syslog.New(syslog.LOG_NOTICE, "showgraph")
		if err != nil {
			return nil, err
		}
		log.SetOutput(logw)
		return func() { logw.Close() }, nil
	case "none":
		log.SetOutput(io.Discard)
	case "", "stdout":
		log.SetOutput(os.Stdout)
	default:
		f, err := os.OpenFile(logfile,
			os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		log.SetOutput(f)
		return func() { f.Close() }, nil
	}
	return func() {}, nil
}
