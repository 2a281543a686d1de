package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/invoiceslite/go-invoices-server/auth"
	"github.com/invoiceslite/go-invoices-server/customers"
	customerrepofake "github.com/invoiceslite/go-invoices-server/customers/repofake"
	"github.com/invoiceslite/go-invoices-server/internal/config"
	"github.com/invoiceslite/go-invoices-server/invoices"
	invoicerepofake "github.com/invoiceslite/go-invoices-server/invoices/repofake"
	"github.com/invoiceslite/go-invoices-server/server"
	"github.com/invoiceslite/go-invoices-server/store/gormstore"
	"github.com/invoiceslite/go-invoices-server/tenants"
	tenantrepofakes "github.com/invoiceslite/go-invoices-server/tenants/repofakes"
	"github.com/invoiceslite/go-invoices-server/token"
	"github.com/invoiceslite/go-invoices-server/token/revocation"
	"github.com/invoiceslite/go-invoices-server/users"
	userrepofake "github.com/invoiceslite/go-invoices-server/users/repofake"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	srv, err := buildServer(c)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	if c.GetAccessSecret() == "" || c.GetRefreshSecret() == "" {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}

	revocationStore, err := buildRevocationStore(c)
	if err != nil {
		return nil, err
	}

	tokenService := token.New(
		revocationStore,
		token.NewHMACSigner(c.GetAccessSecret()),
		token.NewHMACSigner(c.GetRefreshSecret()),
		token.WithTokenExpiry(c.GetAccessTokenExpiry(), c.GetRefreshTokenExpiry()),
	)

	userRepo, tenantRepo, membershipRepo, customerRepo, invoiceRepo, err := buildRepos(c)
	if err != nil {
		return nil, err
	}

	authService, err := auth.NewService(auth.Repos{
		Users:       userRepo,
		Tenants:     tenantRepo,
		Memberships: membershipRepo,
	}, tokenService)
	if err != nil {
		return nil, err
	}

	return server.New(c, authService, tokenService, server.Repos{
		Tenants:   tenantRepo,
		Customers: customerRepo,
		Invoices:  invoiceRepo,
	})
}

// buildRevocationStore prefers Redis; without REDIS_ADDR sessions live in
// process memory and do not survive a restart.
func buildRevocationStore(c config.Config) (revocation.Store, error) {
	if addr := c.GetRedisAddr(); addr != "" {
		store, err := revocation.NewRedisStore(addr, c.GetRedisPassword(), c.GetRedisDB())
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return store, nil
	}
	log.Printf("REDIS_ADDR not set, using in-memory revocation store\n")
	return revocation.NewInMemoryStore(), nil
}

func buildRepos(c config.Config) (users.UserRepo, tenants.Repo, tenants.MembershipRepo, customers.Repo, invoices.Repo, error) {
	if dsn := c.GetDatabaseDSN(); dsn != "" {
		store, err := gormstore.Open(dsn)
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		return store.Users(), store.Tenants(), store.Memberships(), store.Customers(), store.Invoices(), nil
	}
	log.Printf("DATABASE_DSN not set, using in-memory repositories\n")
	return userrepofake.NewFakeUserRepo(),
		tenantrepofakes.NewFakeTenantRepo(),
		tenantrepofakes.NewFakeMembershipRepo(),
		customerrepofake.NewFakeCustomerRepo(),
		invoicerepofake.NewFakeInvoiceRepo(),
		nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
