// Package http carries the upload-and-convert web surface: an index page with
// a file form, the create endpoint, and the history listing.
package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/timnik82/quiz-forms/internal/forms"
	"github.com/timnik82/quiz-forms/internal/history"
	"github.com/timnik82/quiz-forms/internal/quiz"
	"github.com/timnik82/quiz-forms/internal/storage"
)

const maxUploadSize = 10 << 20 // 10 MiB

// FormCreator is the Forms API surface the create handler needs. *forms.Client
// satisfies it; tests substitute a fake.
type FormCreator interface {
	Create(ctx context.Context, title string) (forms.Form, error)
	BatchUpdate(ctx context.Context, formID string, reqs []forms.Request) error
	Get(ctx context.Context, formID string) (forms.Form, error)
}

type Deps struct {
	Creator FormCreator        // nil forces dry-run for every request
	Store   *history.Store     // optional
	Events  *history.EventRepo // optional
	Blobs   storage.BlobStore  // optional
}

// dryRunPayload mirrors what would be sent to the Forms API.
type dryRunPayload struct {
	Create struct {
		Info forms.Info `json:"info"`
	} `json:"create"`
	BatchUpdate struct {
		Requests []forms.Request `json:"requests"`
	} `json:"batchUpdate"`
}

// GET /
func IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, indexPage)
	}
}

// POST /create (multipart: title, file, dry_run)
func CreateFormHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			http.Error(w, "could not parse multipart body: "+err.Error(), http.StatusBadRequest)
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		if title == "" {
			title = "Quiz"
		}
		dryRun := r.FormValue("dry_run") != "" || d.Creator == nil

		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, "could not read uploaded file: "+err.Error(), http.StatusBadRequest)
			return
		}

		text := strings.TrimPrefix(string(raw), "\ufeff") // tolerate BOM
		doc := quiz.Parse(text)
		reqs := append([]forms.Request{forms.QuizSettingsRequest()}, forms.BuildRequests(doc, 0)...)

		if dryRun {
			var payload dryRunPayload
			payload.Create.Info = forms.Info{Title: title}
			payload.BatchUpdate.Requests = reqs
			writeJSON(w, payload)
			return
		}

		ctx := r.Context()
		form, err := d.Creator.Create(ctx, title)
		if err != nil {
			http.Error(w, "forms api error: "+err.Error(), http.StatusBadGateway)
			return
		}
		if err := d.Creator.BatchUpdate(ctx, form.FormID, reqs); err != nil {
			http.Error(w, "forms api error: "+err.Error(), http.StatusBadGateway)
			return
		}
		created, err := d.Creator.Get(ctx, form.FormID)
		if err != nil {
			http.Error(w, "forms api error: "+err.Error(), http.StatusBadGateway)
			return
		}

		sourceKey := archiveUpload(d.Blobs, hdr.Filename, raw)
		recordHistory(ctx, d, title, created, sourceKey, doc)

		writeJSON(w, map[string]string{
			"formId":       created.FormID,
			"responderUri": created.ResponderURI,
		})
	}
}

// GET /forms
func ListFormsHandler(store *history.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := store.List(r.Context(), 0)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, recs)
	}
}

// GET /forms/{id}/source streams the archived upload a form was built from.
func FormSourceHandler(store *history.Store, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if err == sql.ErrNoRows || (err == nil && rec.SourceKey == "") {
			http.Error(w, "no archived source for this form", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		blob, err := bs.Get(rec.SourceKey)
		if err != nil {
			http.Error(w, "archived source unavailable", http.StatusNotFound)
			return
		}
		defer blob.Close()
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		if _, err := io.Copy(w, blob); err != nil {
			log.Printf("stream source %s: %v", rec.SourceKey, err)
		}
	}
}

func archiveUpload(bs storage.BlobStore, filename string, data []byte) string {
	if bs == nil {
		return ""
	}
	key := "uploads/" + uuid.NewString() + "-" + sanitizeFilename(filename)
	if _, err := bs.Put(key, bytes.NewReader(data)); err != nil {
		log.Printf("archive upload %s: %v", key, err)
		return ""
	}
	return key
}

func recordHistory(ctx context.Context, d Deps, title string, created forms.Form, sourceKey string, doc quiz.Document) {
	if d.Store == nil {
		return
	}
	questions := 0
	for _, s := range doc {
		questions += len(s.Questions)
	}
	rec, err := d.Store.Put(ctx, history.Record{
		Title:         title,
		FormID:        created.FormID,
		ResponderURI:  created.ResponderURI,
		SourceKey:     sourceKey,
		SectionCount:  len(doc),
		QuestionCount: questions,
	})
	if err != nil {
		log.Printf("record form %s: %v", created.FormID, err)
		return
	}
	if d.Events != nil {
		data, _ := json.Marshal(rec)
		if err := d.Events.Append(ctx, history.Event{
			Type:     history.EventFormCreated,
			Key:      created.FormID,
			DataJSON: string(data),
		}); err != nil {
			log.Printf("append event %s: %v", created.FormID, err)
		}
	}
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "quiz.md"
	}
	return name
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

const indexPage = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Markdown &rarr; Google Form</title>
  </head>
  <body>
    <h1>Markdown &rarr; Google Form</h1>
    <form action="/create" method="post" enctype="multipart/form-data">
      <div>
        <label>Form title: <input type="text" name="title" value="Quiz" /></label>
      </div>
      <div>
        <label>Markdown file: <input type="file" name="file" accept=".md,text/markdown,text/plain" required /></label>
      </div>
      <div>
        <label><input type="checkbox" name="dry_run" value="1" checked /> Dry run (don't create a form)</label>
      </div>
      <div>
        <button type="submit">Create</button>
      </div>
    </form>
  </body>
</html>
`
