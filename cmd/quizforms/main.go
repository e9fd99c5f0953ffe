package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	api "github.com/timnik82/quiz-forms/internal/api/http"
	"github.com/timnik82/quiz-forms/internal/auth"
	"github.com/timnik82/quiz-forms/internal/config"
	"github.com/timnik82/quiz-forms/internal/db"
	"github.com/timnik82/quiz-forms/internal/forms"
	"github.com/timnik82/quiz-forms/internal/history"
	"github.com/timnik82/quiz-forms/internal/quiz"
	"github.com/timnik82/quiz-forms/internal/storage"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "quizforms",
		Short:   "Convert markdown quizzes into Google Forms",
		Version: version,
	}
	rootCmd.AddCommand(createCmd(), serveCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func createCmd() *cobra.Command {
	var (
		input  string
		title  string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Convert a markdown quiz file and create (or print) the form",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}
			doc := quiz.Parse(string(text))
			reqs := append([]forms.Request{forms.QuizSettingsRequest()}, forms.BuildRequests(doc, 0)...)

			if dryRun {
				payload := map[string]any{
					"create":      map[string]forms.Info{"info": {Title: title}},
					"batchUpdate": map[string][]forms.Request{"requests": reqs},
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			cfg := config.FromEnv()
			client := formsClient(cfg)
			ctx := cmd.Context()

			form, err := client.Create(ctx, title)
			if err != nil {
				return err
			}
			if err := client.BatchUpdate(ctx, form.FormID, reqs); err != nil {
				return err
			}
			created, err := client.Get(ctx, form.FormID)
			if err != nil {
				return err
			}
			out := map[string]string{"formId": created.FormID, "responderUri": created.ResponderURI}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "path to a markdown quiz file")
	cmd.Flags().StringVar(&title, "title", "Quiz", "form title")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the Forms API payloads without creating a form")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local upload web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("db open: %w", err)
			}

			bs, err := storage.NewFSStore(cfg.BlobBasePath)
			if err != nil {
				return fmt.Errorf("blob store: %w", err)
			}

			deps := api.Deps{
				Store:  history.NewStore(dbh),
				Events: history.NewEventRepo(dbh),
				Blobs:  bs,
			}
			if cfg.Mode == config.ModeOnline {
				deps.Creator = formsClient(cfg)
			}

			r := chi.NewRouter()
			r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
			r.Use(middleware.Timeout(60 * time.Second))
			if cfg.Mode == config.ModeOnline {
				r.Use(cors.Handler(cors.Options{
					AllowedOrigins:   cfg.CORSOriginsOnline,
					AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
					AllowedHeaders:   []string{"Authorization", "Content-Type"},
					AllowCredentials: true,
					MaxAge:           300,
				}))
			} else {
				r.Use(cors.Handler(cors.Options{
					AllowedOrigins: cfg.CORSOriginsOffline,
					AllowedMethods: []string{"GET", "POST", "OPTIONS"},
					AllowedHeaders: []string{"Authorization", "Content-Type"},
					MaxAge:         300,
				}))
			}

			r.Get("/", api.IndexHandler())
			r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

			if cfg.EnableLocalAuth {
				authSvc := auth.NewService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash)
				r.Post("/auth/login", auth.LoginHandler(authSvc))
				r.Group(func(pr chi.Router) {
					pr.Use(auth.JWTMiddleware(authSvc))
					pr.Post("/create", api.CreateFormHandler(deps))
					pr.Get("/forms", api.ListFormsHandler(deps.Store))
					pr.Get("/forms/{id}/source", api.FormSourceHandler(deps.Store, bs))
				})
			} else {
				r.Post("/create", api.CreateFormHandler(deps))
				r.Get("/forms", api.ListFormsHandler(deps.Store))
				r.Get("/forms/{id}/source", api.FormSourceHandler(deps.Store, bs))
			}

			log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
			return http.ListenAndServe(cfg.HTTPAddr, r)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

func formsClient(cfg config.Config) *forms.Client {
	ts := auth.NewFileTokenSource(cfg.TokenPath, cfg.GoogleClientID, cfg.GoogleClientSecret)
	return forms.NewClient(ts)
}
