package smtp

import (
	"context"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listen(t *testing.T) (net.Listener, string, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return ln, host, port
}

// serveOnce speaks just enough SMTP to accept one message.
func serveOnce(ln net.Listener, received chan<- string) {
	conn, err := ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ESMTP")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		switch {
		case strings.HasPrefix(line, "EHLO"):
			_ = tp.PrintfLine("250 localhost")
		case strings.HasPrefix(line, "MAIL FROM"), strings.HasPrefix(line, "RCPT TO"):
			_ = tp.PrintfLine("250 OK")
		case line == "DATA":
			_ = tp.PrintfLine("354 go ahead")
			body, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			received <- string(body)
			_ = tp.PrintfLine("250 queued")
		case line == "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 unsupported")
		}
	}
}

// silent accepts connections and never writes a greeting.
func silent(t *testing.T, ln net.Listener) {
	var (
		mu   sync.Mutex
		held []net.Conn
	)
	t.Cleanup(func() {
		mu.Lock()
		defer mu.Unlock()
		for _, conn := range held {
			conn.Close()
		}
	})
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			held = append(held, conn)
			mu.Unlock()
		}
	}()
}

func TestSendMail(t *testing.T) {
	ln, host, port := listen(t)
	received := make(chan string, 1)
	go serveOnce(ln, received)

	mailer := New(host, port, "tracker@example.com", "", time.Second)
	require.NoError(t, mailer.SendMail(context.Background(), "alice@example.com", "Budget exceeded", "spent 100 of 100"))

	select {
	case msg := <-received:
		assert.Contains(t, msg, "From: tracker@example.com")
		assert.Contains(t, msg, "To: alice@example.com")
		assert.Contains(t, msg, "Subject: Budget exceeded")
		assert.True(t, strings.HasSuffix(strings.TrimSpace(msg), "spent 100 of 100"))
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestSendMailGivesUpOnSilentServer(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		ctx     func() (context.Context, context.CancelFunc)
	}{
		{
			name:    "mailer timeout",
			timeout: 200 * time.Millisecond,
			ctx:     func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
		},
		{
			name:    "caller deadline",
			timeout: 30 * time.Second,
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 200*time.Millisecond)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ln, host, port := listen(t)
			silent(t, ln)

			ctx, cancel := tt.ctx()
			defer cancel()

			start := time.Now()
			err := New(host, port, "tracker@example.com", "", tt.timeout).SendMail(ctx, "alice@example.com", "s", "b")
			assert.Error(t, err)
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestNewDefaultsTimeout(t *testing.T) {
	mailer := New("mail.example.com", 587, "tracker@example.com", "secret", 0).(*smtp)
	assert.Equal(t, defaultTimeout, mailer.timeout)
	assert.Equal(t, "mail.example.com:587", mailer.addr)
}
