package spectate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Handler routes /ws to the hub and answers /healthz.
func Handler(h *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok %d\n", h.Clients())
	})
	return mux
}

// Serve runs the spectator feed on addr until ctx is done.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	h.logger.Info("spectator feed listening", "address", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: %w", err)
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	return nil
}
