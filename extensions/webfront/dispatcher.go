package webfront

import (
	"net/http"
)

const (
	DefaultDocument = "./index.html"
	NotFoundBody    = "404 Not Found"
)

// Dispatcher serves the document at the site root and rejects every other path.
// It must be installed without http.ServeMux in front of it, since the mux
// cleans paths and would redirect "//" to "/".
type Dispatcher struct {
	document string
}

func NewDispatcher(document string) *Dispatcher {
	if document == "" {
		document = DefaultDocument
	}
	return &Dispatcher{document: document}
}

func (d *Dispatcher) Document() string {
	return d.document
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		ServeDocument(w, r, d.document)
		return
	}
	writeNotFound(w)
}

func writeNotFound(w http.ResponseWriter) {
	header := w.Header()
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(NotFoundBody))
}
