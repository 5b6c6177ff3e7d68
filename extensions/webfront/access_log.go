package webfront

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type accessLog struct {
	handler http.Handler
	logger  *logrus.Entry
}

// NewAccessLog logs every request handled by handler at debug level.
func NewAccessLog(handler http.Handler, logger *logrus.Entry) http.Handler {
	return &accessLog{handler: handler, logger: logger}
}

func (l *accessLog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !l.logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		l.handler.ServeHTTP(w, r)
		return
	}
	start := time.Now()
	writer := &statusWriter{ResponseWriter: w}
	l.handler.ServeHTTP(writer, r)
	if writer.status == 0 {
		writer.status = http.StatusOK
	}
	l.logger.WithFields(logrus.Fields{
		"id":       uuid.NewString(),
		"remote":   r.RemoteAddr,
		"method":   r.Method,
		"uri":      r.URL.RequestURI(),
		"proto":    r.Proto,
		"status":   writer.status,
		"bytes":    writer.written,
		"duration": time.Since(start),
	}).Debug("request")
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.written += int64(n)
	return n, err
}

func (w *statusWriter) ReadFrom(r io.Reader) (int64, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	var n int64
	var err error
	if readerFrom, ok := w.ResponseWriter.(io.ReaderFrom); ok {
		n, err = readerFrom.ReadFrom(r)
	} else {
		n, err = io.Copy(w.ResponseWriter, r)
	}
	w.written += n
	return n, err
}

func (w *statusWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
