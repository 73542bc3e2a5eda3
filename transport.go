package scpi

import (
	"bufio"
	"crypto/tls"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

// Toy line-oriented TCP transport. Not a spec module (spec.md's Non-goals
// exclude physical I/O transport); this exists only to give the dispatcher
// a runnable home, adapted from the teacher's Accept-loop shape
// (server.go) and functional-options constructor (client_option.go).

const (
	// DefaultReadTimeout bounds how long the server waits for a newline
	// before dropping a connection.
	DefaultReadTimeout = 30 * time.Second
)

// ServerOption configures a Server via NewServer.
type ServerOption func(*Server)

// WithTLS serves with the given TLS configuration instead of plaintext TCP.
func WithTLS(tc *tls.Config) ServerOption {
	return func(s *Server) { s.tc = tc }
}

// WithReadTimeout overrides DefaultReadTimeout.
func WithReadTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

// WithLogger overrides the package logger for this server only.
func WithLogger(lg *logrus.Logger) ServerOption {
	return func(s *Server) { s.lg = lg }
}

// Server accepts connections and dispatches one program message per line
// against root/device.
type Server struct {
	address string
	tc      *tls.Config
	root    *Node
	newDev  func() ScpiDevice

	readTimeout time.Duration
	lg          *logrus.Logger
	listener    net.Listener
}

// NewServer returns a Server listening at address. newDevice is called once
// per accepted connection to construct that connection's device state
// (spec.md §5: device state is exclusive per dispatch, not shared across
// connections).
func NewServer(address string, root *Node, newDevice func() ScpiDevice, opts ...ServerOption) *Server {
	s := &Server{
		address:     address,
		root:        root,
		newDev:      newDevice,
		readTimeout: DefaultReadTimeout,
		lg:          _lg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve accepts connections until the listener fails or is closed.
func (s *Server) Serve() error {
	if err := s.listen(); err != nil {
		return err
	}
	defer s.listener.Close()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.lg.Errorf("scpi: accept: %v", err)
			return err
		}
		go s.serve(conn)
	}
}

func (s *Server) listen() (err error) {
	if s.tc != nil {
		s.listener, err = tls.Listen("tcp", s.address, s.tc)
		if err == nil {
			s.lg.Debugf("scpi: serving %s (TLS)", s.address)
		}
		return err
	}
	s.listener, err = net.Listen("tcp", s.address)
	if err == nil {
		s.lg.Debugf("scpi: serving %s", s.address)
	}
	return err
}

// serve reads newline-terminated program messages from conn, dispatches
// each, and writes back any response bytes (spec.md §6 wire format).
func (s *Server) serve(conn net.Conn) {
	defer conn.Close()
	s.lg.Debugf("scpi: connection from %s", conn.RemoteAddr())

	dev := s.newDev()
	fmtr := NewBoundedFormatter(64 * 1024)
	reader := bufio.NewReader(conn)

	for {
		conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		line, err := reader.ReadBytes('\n')
		if err != nil {
			s.lg.Debugf("scpi: connection from %s closed: %v", conn.RemoteAddr(), err)
			return
		}
		out := Dispatch(s.root, dev, line, fmtr)
		if len(out) == 0 {
			continue
		}
		if _, err := conn.Write(out); err != nil {
			s.lg.Errorf("scpi: write to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}
