//nolint:all
package server_test

import (
	"net"
	"testing"
	"time"

	"github.com/andrei-cloud/anet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrei-cloud/go_segop/internal/server"
	"github.com/andrei-cloud/go_segop/pkg/payload"
)

const testAddr = "127.0.0.1:1601"

// startTestServer starts the payload server for testing.
func startTestServer(t *testing.T, maxSize int) *server.Server {
	t.Helper()

	srv, err := server.NewServer(testAddr, maxSize)
	require.NoError(t, err)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		require.NoError(t, err, "server start error")
	case <-time.After(1 * time.Second):
		// Allow some time for the server to start
	}

	time.Sleep(100 * time.Millisecond)

	return srv
}

func TestServerCommands(t *testing.T) {
	srv := startTestServer(t, payload.MaxPayloadSize)
	defer srv.Stop()

	factory := func(addr string) (anet.PoolItem, error) {
		conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
		if err != nil {
			return nil, err
		}

		if err := conn.SetDeadline(time.Now().Add(2 * time.Second)); err != nil {
			conn.Close()

			return nil, err
		}

		return conn, nil
	}

	// send uses a fresh single-connection broker for each request.
	send := func(t *testing.T, req []byte) []byte {
		t.Helper()

		pool := anet.NewPool(1, factory, testAddr, nil)
		defer pool.Close()

		broker := anet.NewBroker([]anet.Pool{pool}, 1, nil, nil)
		go broker.Start()
		defer broker.Close()

		resp, err := broker.Send(&req)
		require.NoError(t, err)

		return resp
	}

	built, err := payload.Build(
		payload.TextContent("BUDS structured test"),
		payload.Metadata{Tier: "T1_METADATA", Kind: "TEXT_NOTE"},
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		req  string
		want []byte
	}{
		{
			name: "build payload",
			req:  `BP{"text":"BUDS structured test","tier":"T1_METADATA","kind":"TEXT_NOTE"}`,
			want: append([]byte("BQ00"), built...),
		},
		{
			name: "build blob",
			req:  `BP{"blob_hex":"deadbeef00ff"}`,
			want: append([]byte("BQ00"), 0x03, 0x06, 0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0xFF),
		},
		{
			name: "commitment",
			req:  `CP{"text":"BUDS structured test","tier":"T1_METADATA","kind":"TEXT_NOTE"}`,
			want: append([]byte("CQ00"), payload.CommitmentBlob(built)...),
		},
		{
			name: "bad hex",
			req:  `BP{"blob_hex":"abc"}`,
			want: []byte("BQ13"),
		},
		{
			name: "no content",
			req:  `BP{"tier":"T2_OPERATIONAL"}`,
			want: []byte("BQ14"),
		},
		{
			name: "unknown kind",
			req:  `CP{"text":"x","kind":"NOPE"}`,
			want: []byte("CQ12"),
		},
		{
			name: "malformed json",
			req:  `BP{"text":`,
			want: []byte("BQ51"),
		},
		{
			name: "unknown command",
			req:  "ZZ0123",
			want: []byte("ZA68"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, send(t, []byte(tt.req)))
		})
	}
}
