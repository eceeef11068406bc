package wire

import (
	"context"
	"errors"
	"fmt"

	"github.com/dfryer1193/blogify/blog/application"
	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/dfryer1193/blogify/blog/persistence"
	"github.com/dfryer1193/blogify/blog/render"
	"github.com/dfryer1193/blogify/internal/rest"
	"github.com/dfryer1193/blogify/shared/db/mongo"
	"github.com/dfryer1193/blogify/shared/db/postgres"
	"github.com/dfryer1193/blogify/shared/db/sqlite"
	gh "github.com/dfryer1193/blogify/shared/github"
	"github.com/dfryer1193/blogify/shared/llm"
	webhookhttp "github.com/dfryer1193/blogify/webhook/http"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg        *viper.Viper
	Store      string
	Posts      *application.PostService
	Generation *application.GenerationService
	Pipeline   *render.Pipeline
	Importer   *application.Importer
	// GitHub and Sync are nil unless import.github.owner and repo are set.
	GitHub *gh.GithubSourceRepository
	Sync   *application.SyncService

	closers []func() error
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	app := &App{Cfg: v, Store: v.GetString("store.driver")}

	repo, err := app.openStore(ctx)
	if err != nil {
		return nil, err
	}

	completer, err := llm.New(ctx, llm.Config{
		Provider: v.GetString("ai.provider"),
		APIKey:   v.GetString("ai.api_key"),
		BaseURL:  v.GetString("ai.base_url"),
		Model:    v.GetString("ai.model"),
	})
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Posts = application.NewPostService(repo)
	app.Generation = application.NewGenerationService(completer, v.GetDuration("ai.timeout"))
	app.Pipeline = render.NewPipeline(render.PipelineConfig{
		Highlight: v.GetBool("render.highlight"),
		TrustHTML: v.GetBool("render.trust_html"),
		LinkBase:  v.GetString("render.link_base"),
	})
	app.Importer = application.NewImporter(app.Posts)

	if owner, name := v.GetString("import.github.owner"), v.GetString("import.github.repo"); owner != "" && name != "" {
		app.GitHub = gh.NewGithubSourceRepository(v.GetString("import.github.token"), owner, name, "")
		app.Sync = application.NewSyncService(app.Importer, app.GitHub, v.GetString("import.glob"))
		app.closers = append(app.closers, app.Sync.Close)
	}

	return app, nil
}

func (a *App) openStore(ctx context.Context) (domain.PostRepository, error) {
	v := a.Cfg

	switch a.Store {
	case "sqlite":
		database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig(v.GetString("store.sqlite.path")))
		if err := database.Connect(); err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		return persistence.NewPostRepository(database.DB()), nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, v.GetString("store.postgres.dsn"))
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		return persistence.NewPostgresPostRepository(pool), nil
	case "mongo":
		client, database, err := mongo.Connect(ctx, v.GetString("store.mongo.uri"), v.GetString("store.mongo.database"))
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })
		return persistence.NewMongoPostRepository(database.Collection(mongo.PostsCollection)), nil
	default:
		return nil, fmt.Errorf("unknown store.driver %q", a.Store)
	}
}

// WebhookEnabled reports whether /webhook/git should be served.
func (a *App) WebhookEnabled() bool {
	return a.Sync != nil && a.Cfg.GetString("webhook.secret") != ""
}

// Router builds the HTTP handler for the serve command.
func (a *App) Router() *gin.Engine {
	router := rest.NewRouter(rest.Dependencies{
		Posts:      a.Posts,
		Generation: a.Generation,
		Pipeline:   a.Pipeline,
		Store:      a.Store,
		Features: map[string]bool{
			"githubSync": a.Sync != nil,
			"webhook":    a.WebhookEnabled(),
			"trustHTML":  a.Cfg.GetBool("render.trust_html"),
			"highlight":  a.Cfg.GetBool("render.highlight"),
		},
	})

	if a.WebhookEnabled() {
		webhookhttp.NewWebhookHandler(a.Cfg.GetString("webhook.secret"), a.Sync).RegisterRoutes(router)
	} else if a.Sync != nil {
		log.Warn().Msg("webhook.secret is empty, /webhook/git is disabled")
	}

	return router
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
