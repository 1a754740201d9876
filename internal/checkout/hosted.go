package checkout

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/workdlabs/workd/internal/browser"
)

// Hosted opens the platform's hosted checkout page in the user's browser and
// waits for the completion redirect on an ephemeral localhost listener. The
// page collects payment details itself; this process only learns the outcome.
type Hosted struct {
	// CheckoutURL is the base URL of the hosted payment page.
	CheckoutURL string
	// Timeout bounds the wait for the completion callback. Zero means 2 minutes.
	Timeout time.Duration
	Log     *logrus.Logger

	// openBrowser is swapped in tests.
	openBrowser func(url string) error
}

// NewHosted creates a hosted checkout provider.
func NewHosted(checkoutURL string, log *logrus.Logger) *Hosted {
	return &Hosted{CheckoutURL: checkoutURL, Log: log, openBrowser: browser.Open}
}

// Checkout implements Provider. It blocks until the payment page redirects
// back, the context is cancelled, or the timeout elapses.
func (h *Hosted) Checkout(ctx context.Context, order Order) error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("checkout: start callback listener: %w", err)
	}
	defer listener.Close() //nolint:errcheck

	port := listener.Addr().(*net.TCPAddr).Port
	doneCh := make(chan error, 1)

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return fmt.Errorf("checkout: generate state: %w", err)
	}
	expectedState := hex.EncodeToString(stateBytes)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != expectedState {
			http.Error(w, "invalid state", http.StatusForbidden)
			doneCh <- fmt.Errorf("callback state mismatch")
			return
		}
		switch r.URL.Query().Get("result") {
		case "success":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, callbackHTML) //nolint:errcheck
			doneCh <- nil
		case "cancelled":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, callbackHTML) //nolint:errcheck
			doneCh <- fmt.Errorf("payment cancelled")
		default:
			http.Error(w, "missing result", http.StatusBadRequest)
			doneCh <- fmt.Errorf("callback received without result")
		}
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if srvErr := srv.Serve(listener); srvErr != nil && srvErr != http.ErrServerClosed {
			doneCh <- srvErr
		}
	}()
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx) //nolint:errcheck
	}()

	params := url.Values{}
	params.Set("reference", order.Reference)
	params.Set("amount", strconv.FormatInt(order.Amount, 10))
	params.Set("currency", order.Currency)
	params.Set("name", order.Name)
	params.Set("description", order.Description)
	params.Set("cli_port", strconv.Itoa(port))
	params.Set("state", expectedState)
	checkoutURL := h.CheckoutURL + "?" + params.Encode()

	if err := h.openBrowser(checkoutURL); err != nil {
		if h.Log != nil {
			h.Log.WithError(err).Warn("could not open browser for checkout")
		}
		return fmt.Errorf("checkout: open browser: %w", err)
	}
	if h.Log != nil {
		h.Log.WithField("reference", order.Reference).Info("checkout started")
	}

	timeout := h.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	select {
	case err := <-doneCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return fmt.Errorf("checkout timed out waiting for callback")
	}
}

const callbackHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Workd</title>
<style>
body{background:#0c1014;color:#e2e8f0;font-family:monospace;
height:100vh;display:flex;align-items:center;justify-content:center}
.card{text-align:center}
.logo{font-size:28px;font-weight:700;letter-spacing:8px;color:#0d9488;margin-bottom:16px}
.sub{font-size:12px;color:#64748b}
</style>
</head>
<body>
<div class="card">
  <div class="logo">WORKD</div>
  <div class="sub">payment recorded, return to your terminal</div>
</div>
</body>
</html>`
