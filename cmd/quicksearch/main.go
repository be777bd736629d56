// Command quicksearch runs the storefront's debounced product search against the
// catalog database. Each line read from stdin is the current content of the
// search box; results are printed as they settle.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"shoe-storefront/internal/catalog"
	"shoe-storefront/internal/config"
	"shoe-storefront/internal/database"
	"shoe-storefront/internal/logger"
	"shoe-storefront/internal/repository"

	"go.uber.org/zap"
)

// settleTimeout bounds the wait for the last query after stdin closes
const settleTimeout = 5 * time.Second

func printResult(w io.Writer, r catalog.SearchResult) {
	switch {
	case r.Err != nil:
		fmt.Fprintf(w, "[%d] %q: search failed: %v\n", r.Token, r.Query, r.Err)
	case len(r.Products) == 0:
		fmt.Fprintf(w, "[%d] %q: no results\n", r.Token, r.Query)
	default:
		fmt.Fprintf(w, "[%d] %q:\n", r.Token, r.Query)
		for _, p := range r.Products {
			fmt.Fprintf(w, "  %s  %s  %d\n", p.Brand, p.Name, p.Price)
		}
	}
}

// run feeds every line of in to live and prints each result to out. After in is
// exhausted it waits for the last query to settle.
func run(in io.Reader, out io.Writer, live *catalog.LiveSearch, results chan catalog.SearchResult) {
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for r := range results {
			printResult(out, r)
		}
	}()

	var last uint64
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		last = live.Type(scanner.Text())
	}

	deadline := time.Now().Add(settleTimeout)
	for last > 0 {
		r := live.Result()
		if r.Token == last && !r.Loading {
			break
		}
		if time.Now().After(deadline) {
			fmt.Fprintln(out, "timed out waiting for search results")
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	live.Stop()
	close(results)
	<-printed
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	dbService, err := database.New(context.Background(), cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbService.Close()

	results := make(chan catalog.SearchResult)
	live := catalog.NewLiveSearch(
		repository.NewProductRepository(dbService.DB()),
		cfg.Storefront.SearchDebounce(),
		log,
		func(r catalog.SearchResult) { results <- r },
	).WithLimit(cfg.Storefront.SearchLimit)

	run(os.Stdin, os.Stdout, live, results)
}
