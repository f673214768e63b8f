package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/pennyledger/backend/internal/auth"
	"github.com/pennyledger/backend/internal/config"
	"github.com/pennyledger/backend/internal/currency"
	"github.com/pennyledger/backend/internal/server"
	"github.com/pennyledger/backend/internal/service"
	"github.com/pennyledger/backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var storeImpl store.Store
	var firebaseAuth *auth.FirebaseAuth

	if cfg.UseMemoryStore {
		log.Println("Using in-memory store for local development")
		storeImpl = store.NewMemoryStore()
	} else {
		if cfg.GoogleCloudProject == "" {
			log.Fatal("GOOGLE_CLOUD_PROJECT is required when not using the memory store")
		}
		firestoreClient, err := firestore.NewClient(ctx, cfg.GoogleCloudProject)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()
		storeImpl = store.NewFirestoreStore(firestoreClient)
	}

	// Memory-store runs always use mock auth so local development needs no
	// Firebase setup; SKIP_AUTH does the same against real Firestore.
	if cfg.UseMemoryStore || cfg.SkipAuth {
		log.Println("Using mock authentication (local development mode)")
	} else {
		var err error
		firebaseAuth, err = auth.NewFirebaseAuth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}
	}

	var converter *currency.Converter
	if cfg.RateAPIBaseURL != "" {
		converter = currency.NewConverter(currency.NewHTTPRateSource(cfg.RateAPIBaseURL), 0)
	}

	summarizer := service.NewOpenAISummarizer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if summarizer == nil {
		log.Println("OPENAI_API_KEY not set, AI summaries disabled")
	}

	financeService := service.NewFinanceService(storeImpl, converter, summarizerOrNil(summarizer),
		service.WithDefaultBaseCurrency(cfg.DefaultBaseCurrency))
	srv := server.NewServer(financeService, cfg.SchedulerToken)

	var middleware func(http.Handler) http.Handler
	if firebaseAuth != nil {
		middleware = auth.Middleware(firebaseAuth)
	} else {
		middleware = auth.LocalDevMiddleware()
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:1234",
			"http://127.0.0.1:1234",
			"https://pennyledger.app",
			"https://www.pennyledger.app",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
			"X-Debug-Impersonate-User",
			"X-Scheduler-Token",
		},
		AllowCredentials: true,
	})

	handler := c.Handler(middleware(srv.Routes()))

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	log.Printf("Starting server on port %s", cfg.Port)
	if err := httpSrv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// summarizerOrNil keeps a nil *OpenAISummarizer from becoming a non-nil
// interface value.
func summarizerOrNil(s *service.OpenAISummarizer) service.Summarizer {
	if s == nil {
		return nil
	}
	return s
}
