package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"blogly/internal/migrate"
	"blogly/internal/post"
	"blogly/internal/shared/db"
	"blogly/internal/tag"
	"blogly/internal/user"

	"github.com/brianvoe/gofakeit/v6"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var tagPool = []string{"pets", "winning", "cute", "travel", "food", "music", "code", "news"}

func atoiDef(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// newResource is schemaless so merging it never conflicts with the schema
// URL of resource.Default.
func newResource() (*resource.Resource, error) {
	return resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName("blogly-seed"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
}

func initOTEL(ctx context.Context, endpoint string) func(context.Context) error {
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, err := newResource()
	if err != nil {
		log.Printf("otel resource: %v", err)
	}
	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown
}

func main() {
	ctx := context.Background()

	store, cfg, err := db.OpenFromEnv()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer store.Close()

	// The store's tracing plugin picks up the provider through the otel
	// global, so it can be installed after opening.
	if cfg.OTLPEndpoint != "" {
		shutdown := initOTEL(ctx, cfg.OTLPEndpoint)
		defer func() {
			c, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			_ = shutdown(c)
		}()
	}

	if cfg.AutoMigrate {
		if err := migrate.AutoMigrateAll(ctx, store); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	ctx, span := otel.Tracer("blogly/seed").Start(ctx, "seed")
	defer span.End()

	users := atoiDef(os.Getenv("SEED_USERS"), 10)
	perUser := atoiDef(os.Getenv("SEED_POSTS_PER_USER"), 3)
	gofakeit.Seed(time.Now().UnixNano())

	tags, err := tag.NewService(tag.NewRepository(store)).Ensure(ctx, tagPool)
	if err != nil {
		log.Fatalf("seed tags: %v", err)
	}

	userSvc := user.NewService(user.NewRepository(store))
	postSvc := post.NewService(store)

	var posts int
	for i := 0; i < users; i++ {
		in := user.CreateReq{FirstName: gofakeit.FirstName(), LastName: gofakeit.LastName()}
		// Leave roughly a third without an image so the default kicks in.
		if gofakeit.Number(0, 2) > 0 {
			in.ImageURL = gofakeit.URL()
		}
		u, err := userSvc.Create(ctx, in)
		if err != nil {
			log.Fatalf("seed user: %v", err)
		}

		for j := 0; j < perUser; j++ {
			var ids []uint
			for k := gofakeit.Number(0, 3); k > 0; k-- {
				ids = append(ids, tags[gofakeit.Number(0, len(tags)-1)].ID)
			}
			_, err := postSvc.Create(ctx, u.ID, post.CreateReq{
				Title:   gofakeit.Sentence(5),
				Content: gofakeit.Paragraph(2, 4, 12, " "),
				TagIDs:  ids,
			})
			if err != nil {
				log.Fatalf("seed post for user %d: %v", u.ID, err)
			}
			posts++
		}
	}

	span.SetAttributes(attribute.Int("seed.users", users), attribute.Int("seed.posts", posts))
	log.Printf("seeded %d users, %d tags, %d posts", users, len(tags), posts)
}
