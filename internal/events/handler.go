package events

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// keepAlive is how often an idle stream gets a comment line so proxies
// do not close it.
const keepAlive = 15 * time.Second

// SSEHandler streams broker events as server-sent events. Clients may
// filter feeds with ?feeds=compile,render.
func SSEHandler(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}
		feeds := parseFeeds(r.URL.Query().Get("feeds"))

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("X-Accel-Buffering", "no")

		id, ch := broker.Subscribe()
		defer broker.Unsubscribe(id)
		fmt.Fprint(w, ": subscribed\n\n")
		flusher.Flush()

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()
		for {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case evt, ok := <-ch:
				if !ok {
					return
				}
				if !feeds.match(evt.Feed) {
					continue
				}
				writeEvent(w, evt)
				flusher.Flush()
			}
		}
	}
}

type feedSet map[string]bool

// match reports whether feed passes the filter. An empty set passes all.
func (f feedSet) match(feed string) bool {
	return len(f) == 0 || f[feed]
}

func parseFeeds(q string) feedSet {
	set := feedSet{}
	for _, f := range strings.Split(q, ",") {
		if f = strings.TrimSpace(f); f != "" {
			set[f] = true
		}
	}
	return set
}

func writeEvent(w http.ResponseWriter, evt Event) {
	if evt.Seq > 0 {
		fmt.Fprintf(w, "id: %d\n", evt.Seq)
	}
	fmt.Fprintf(w, "event: %s\n", evt.Feed)
	for _, line := range strings.Split(evt.Payload, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
}
