// RecipeBox — a recipe manager with offline-friendly type browsing.
//
// Usage:
//
//	recipebox [-verbose] [-quiet] <command> [args]
//
// Commands:
//
//	login <username> <password>
//	logout
//	types
//	list [query]
//	add <title> <type-id> <ingredients> <steps>
//	show <id>
//	rm <id>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/zkamal/recipebox/internal/auth"
	"github.com/zkamal/recipebox/internal/credentials"
	"github.com/zkamal/recipebox/internal/domain"
	"github.com/zkamal/recipebox/internal/list"
	"github.com/zkamal/recipebox/internal/logger"
	"github.com/zkamal/recipebox/internal/recipe"
	"github.com/zkamal/recipebox/internal/store"
	"github.com/zkamal/recipebox/internal/taxonomy"
)

const defaultBaseURL = "https://zk-backend.onrender.com"

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (default: stderr)")
	dataDir := flag.String("data-dir", defaultDataDir(), "directory for local state (recipes, cache, credentials)")
	baseURL := flag.String("base-url", envOr("RECIPEBOX_API_URL", defaultBaseURL), "recipe service base URL")
	flag.Parse()

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		if dir := filepath.Dir(*logFile); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	if err := run(log, *dataDir, *baseURL, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger, dataDir, baseURL string, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}

	ctx := context.Background()

	// Wire dependencies.
	creds, err := credentials.NewFileStore(filepath.Join(dataDir, "credentials"), log)
	if err != nil {
		return err
	}
	authClient := auth.NewClient(baseURL, creds, log)

	typeClient := taxonomy.NewClient(baseURL, creds, log)
	typeCache, err := taxonomy.NewDiskCache(filepath.Join(dataDir, "recipetypes.json"), log)
	if err != nil {
		return err
	}
	resolver := taxonomy.NewResolver(typeClient, typeCache, taxonomy.NewBundled(), log)

	recipes, err := store.Open(store.DefaultConfig(filepath.Join(dataDir, "recipes")), log)
	if err != nil {
		return err
	}
	defer recipes.Close()

	model := list.NewModel(resolver, recipes, log)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		if len(rest) != 2 {
			return fmt.Errorf("usage: login <username> <password>")
		}
		if err := authClient.Login(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Println("logged in")
		return nil

	case "logout":
		if err := authClient.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "types":
		for _, t := range resolver.Resolve(ctx) {
			fmt.Printf("%s\t%s\n", t.ID, t.Name)
		}
		return nil

	case "list":
		if err := model.LoadData(ctx); err != nil {
			return err
		}
		if len(rest) > 0 {
			model.SetQuery(strings.Join(rest, " "))
		}
		for _, r := range model.Recipes() {
			fmt.Printf("%s\t%-24s\t%s\n", r.ID, r.Title, r.Type.Name)
		}
		return nil

	case "add":
		if len(rest) != 4 {
			return fmt.Errorf("usage: add <title> <type-id> <ingredients> <steps>")
		}
		if err := model.LoadData(ctx); err != nil {
			return err
		}
		d := recipe.NewDraft(nil)
		d.Title = rest[0]
		d.SetIngredients(rest[2])
		// Steps are semicolon-separated on the command line.
		d.SetSteps(strings.ReplaceAll(rest[3], ";", "\n"))
		if t, ok := findType(model.Types(), rest[1]); ok {
			d.Type = &t
		}
		r, err := d.Build()
		if err != nil {
			return err
		}
		if err := model.Add(r); err != nil {
			return err
		}
		fmt.Println("added", r.ID)
		return nil

	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("usage: show <id>")
		}
		r, err := recipes.Get(rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n\nIngredients: %s\n\n%s\n", r.Title, r.Type.Name, r.IngredientsText(), r.StepsText())
		return nil

	case "rm":
		if len(rest) != 1 {
			return fmt.Errorf("usage: rm <id>")
		}
		if err := model.LoadData(ctx); err != nil {
			return err
		}
		if err := model.Delete(domain.Recipe{ID: rest[0]}); err != nil {
			return err
		}
		fmt.Println("deleted", rest[0])
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func findType(types []domain.RecipeType, id string) (domain.RecipeType, bool) {
	for _, t := range types {
		if t.ID == id {
			return t, true
		}
	}
	return domain.RecipeType{}, false
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recipebox"
	}
	return filepath.Join(home, ".recipebox")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
