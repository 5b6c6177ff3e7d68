package webfront

import (
	"context"
	"errors"
	stdlog "log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/sagernet/sing/common"
	E "github.com/sagernet/sing/common/exceptions"
	"github.com/sagernet/sing/common/rw"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	options  Options
	logger   *logrus.Entry
	listener net.Listener
	server   *http.Server
	done     chan struct{}
}

func NewServer(options Options, logger *logrus.Entry) *Server {
	if options.Document == "" {
		options.Document = DefaultDocument
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{
		options: options,
		logger:  logger,
	}
}

func (s *Server) Handler() http.Handler {
	var handler http.Handler = NewDispatcher(s.options.Document)
	if s.options.Compress {
		handler = gzhttp.GzipHandler(handler)
	}
	handler = NewAccessLog(handler, s.logger)
	if s.options.H2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}
	return handler
}

func (s *Server) Start() error {
	if !rw.FileExists(s.options.Document) {
		s.logger.Warn("document ", s.options.Document, " does not exist yet")
	}
	listener, err := net.Listen("tcp", s.options.ListenAddress())
	if err != nil {
		return E.Cause(err, "listen ", s.options.ListenAddress())
	}
	errorLog := s.logger.WriterLevel(logrus.WarnLevel)
	s.listener = listener
	s.server = &http.Server{
		Handler:                      s.Handler(),
		ErrorLog:                     stdlog.New(errorLog, "", 0),
		DisableGeneralOptionsHandler: true,
	}
	s.server.RegisterOnShutdown(func() {
		common.Close(errorLog)
	})
	s.done = make(chan struct{})
	go s.loop()
	s.logger.Info("HTTP webserver running. Access it at: ", s.URL())
	return nil
}

func (s *Server) loop() {
	defer close(s.done)
	err := s.server.Serve(s.listener)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.HandleError(err)
	}
}

func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// URL returns the address clients should open, with unspecified hosts
// rendered as localhost.
func (s *Server) URL() string {
	host := s.options.Bind
	port := strconv.Itoa(int(s.options.LocalPort))
	if addr, ok := s.Addr().(*net.TCPAddr); ok {
		port = strconv.Itoa(addr.Port)
	}
	if ip := net.ParseIP(host); host == "" || ip != nil && ip.IsUnspecified() {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if err != nil {
		err = common.Close(s.server)
	}
	<-s.done
	s.server = nil
	return err
}

func (s *Server) HandleError(err error) {
	if E.IsClosed(err) {
		return
	}
	s.logger.Warn(err)
}
