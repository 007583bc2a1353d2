package server

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	anetserver "github.com/andrei-cloud/anet/server"
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_segop/internal/cli"
	"github.com/andrei-cloud/go_segop/pkg/errorcodes"
	"github.com/andrei-cloud/go_segop/pkg/payload"
)

const (
	cmdBuildPayload = "BP"
	cmdCommitment   = "CP"
	codeOK          = "00"
)

// logAdapter implements anet.Logger using zerolog.
type logAdapter struct{}

func (l logAdapter) Print(v ...any) {
	log.Info().Msg(fmt.Sprint(v...))
}

func (l logAdapter) Printf(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Infof(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Warnf(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

func (l logAdapter) Errorf(format string, v ...any) {
	log.Error().Msgf(format, v...)
}

// Server exposes payload building over an anet TCP listener.
type Server struct {
	address     string
	srv         *anetserver.Server
	maxSize     int
	activeConns int32
}

// NewServer configures a server on address. maxSize caps every payload (0 disables the cap).
func NewServer(address string, maxSize int) (*Server, error) {
	cfg := &anetserver.ServerConfig{
		MaxConns:        100,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     0 * time.Second, // disable idle connection closure.
		ShutdownTimeout: 5 * time.Second,
		Logger:          logAdapter{},
	}

	s := &Server{
		address: address,
		maxSize: maxSize,
	}
	srv, err := anetserver.NewServer(address, anetserver.HandlerFunc(s.handle), cfg)
	if err != nil {
		return nil, fmt.Errorf("server setup failed: %w", err)
	}
	s.srv = srv

	return s, nil
}

// Start begins listening for connections.
func (s *Server) Start() error {
	log.Info().Str("address", s.address).Int("max_size", s.maxSize).Msg("server started")
	return s.srv.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	return s.srv.Stop()
}

// formatData returns ascii string if all bytes are printable, else hex string.
func formatData(data []byte) string {
	for _, b := range data {
		if b < 32 || b > 126 {
			return hex.EncodeToString(data)
		}
	}
	return string(data)
}

// incrementCode returns the response code by incrementing the second character.
func incrementCode(cmd string) string {
	b := []byte(cmd)
	if len(b) < 2 {
		return cmd
	}
	if b[1] == 'Z' {
		b[1] = 'A'
	} else {
		b[1]++
	}

	return string(b)
}

// errorResponse answers cmd with the code carried by err.
func errorResponse(cmd string, err error) []byte {
	return []byte(incrementCode(cmd) + errorcodes.Code(err))
}

// execute runs one command and returns the response body following the status code.
func (s *Server) execute(runID, cmd string, body []byte) ([]byte, error) {
	if cmd != cmdBuildPayload && cmd != cmdCommitment {
		return nil, errorcodes.ErrUnknownCommand
	}

	var req cli.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", errorcodes.ErrMalformedRequest, err)
	}

	buf, err := cli.GeneratePayload(runID, "tcp:"+cmd, req, s.maxSize)
	if err != nil {
		return nil, err
	}
	if cmd == cmdCommitment {
		return payload.CommitmentBlob(buf), nil
	}

	return buf, nil
}

func (s *Server) handle(conn *anetserver.ServerConn, data []byte) ([]byte, error) {
	client := conn.Conn.RemoteAddr().String()
	atomic.AddInt32(&s.activeConns, 1)
	defer atomic.AddInt32(&s.activeConns, -1)

	start := time.Now()
	if len(data) < 2 {
		log.Error().Str("client_ip", client).Msg("malformed request")
		return nil, errors.New("malformed request")
	}

	runID := cli.NewRunID()
	cmd := string(data[:2])
	reqStr := formatData(data)
	log.Info().
		Str("event", "request_received").
		Str("run_id", runID).
		Str("client_ip", client).
		Str("command", cmd).
		Str("request", reqStr).
		Int("active_connections", int(atomic.LoadInt32(&s.activeConns))).
		Msg("received command")

	var resp []byte
	body, err := s.execute(runID, cmd, data[2:])
	switch {
	case errors.Is(err, errorcodes.ErrUnknownCommand):
		log.Warn().
			Str("event", "unknown_command").
			Str("run_id", runID).
			Str("client_ip", client).
			Str("command", cmd).
			Msg("command not recognized, responding with error code")
		resp = errorResponse(cmd, err)
	case err != nil:
		log.Error().
			Str("event", "command_error").
			Str("run_id", runID).
			Str("client_ip", client).
			Str("command", cmd).
			Err(err).
			Msg("command failed")
		resp = errorResponse(cmd, err)
	default:
		resp = append([]byte(incrementCode(cmd)+codeOK), body...)
	}

	respStr := formatData(resp)
	log.Info().
		Str("event", "response_sent").
		Str("run_id", runID).
		Str("client_ip", client).
		Str("response", respStr).
		Int("active_connections", int(atomic.LoadInt32(&s.activeConns))).
		Msg("sent response")

	log.Debug().
		Str("event", "handle_done").
		Str("run_id", runID).
		Str("duration", time.Since(start).String()).
		Msg("completed request handling")

	return resp, nil
}
