package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/model"
	"github.com/debemdeboas/inkwell/internal/sse"
	"github.com/debemdeboas/inkwell/internal/util"
	"github.com/rs/zerolog"
)

// serveEvents streams "reload" to a reader of ?post=<slug> whenever that post is saved.
func (s *Server) serveEvents(w http.ResponseWriter, r *http.Request) {
	l := zerolog.Ctx(r.Context())

	slug := r.URL.Query().Get("post")
	if slug == "" {
		util.WriteError(w, http.StatusBadRequest, config.ErrMsgPostParamMissing)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		util.WriteError(w, http.StatusInternalServerError, config.ErrMsgStreamingUnsupported)
		return
	}

	// The stream outlives the server's write timeout.
	http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set(config.HCType, "text/event-stream")
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Del("X-Content-Type-Options")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: connected\ndata: SSE connection established\n\n")
	flusher.Flush()

	client := sse.NewClient(model.Slug(slug))
	s.clients.Add(client)
	l.Debug().Str("slug", slug).Int("clients", s.clients.Len()).Msg("SSE client connected")

	defer func() {
		s.clients.Delete(client)
		l.Debug().Str("slug", slug).Msg("SSE client disconnected")
	}()

	notify := r.Context().Done()
	for {
		select {
		case msg, ok := <-client.Msg:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-notify:
			return
		}
	}
}
