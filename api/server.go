// Package api serves the player's HTTP status and control surface.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/matt-g-everett/cssanim/css"
	"github.com/matt-g-everett/cssanim/scene"
	"github.com/matt-g-everett/cssanim/timing"
	"github.com/matt-g-everett/cssanim/util"
)

const (
	maxCurveSamples = 4096
	shutdownTimeout = 5 * time.Second
)

type Api struct {
	addr  string
	scene *scene.Scene
	post  func(func()) bool
}

// NewApi creates an instance of Api. post runs a function on the engine
// goroutine; handlers wait for it to complete.
func NewApi(addr string, sc *scene.Scene, post func(func()) bool) *Api {
	a := new(Api)
	a.addr = addr
	a.scene = sc
	a.post = post
	return a
}

// Handler returns the routes.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/styles", a.handleStyles)
	mux.HandleFunc("/pause", a.handlePause)
	mux.HandleFunc("/resume", a.handleResume)
	mux.HandleFunc("/curve", a.handleCurve)
	return mux
}

// Serve listens until ctx is done.
func (a *Api) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: a.addr, Handler: a.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Printf("Listening on %s", a.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// do runs fn on the engine goroutine and waits for it.
func (a *Api) do(r *http.Request, fn func()) bool {
	done := make(chan struct{})
	if !a.post(func() {
		fn()
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-r.Context().Done():
		return false
	}
}

func (a *Api) handleStyles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var snapshot map[int]css.StyleMap
	if !a.do(r, func() { snapshot = a.scene.Snapshot() }) {
		return
	}
	writeJSON(w, snapshot)
}

func (a *Api) handlePause(w http.ResponseWriter, r *http.Request) {
	a.control(w, r, a.scene.Pause)
}

func (a *Api) handleResume(w http.ResponseWriter, r *http.Request) {
	a.control(w, r, a.scene.Resume)
}

func (a *Api) control(w http.ResponseWriter, r *http.Request, fn func()) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var paused bool
	if !a.do(r, func() {
		fn()
		paused = a.scene.Scheduler().IsPaused()
	}) {
		return
	}
	writeJSON(w, map[string]bool{"paused": paused})
}

// handleCurve samples a timing function, e.g. /curve?fn=ease-out-bounce&n=32.
// mirror=true returns a rise and fall table.
func (a *Api) handleCurve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := css.ParseTimingFunction(q.Get("fn"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n := 64
	if s := q.Get("n"); s != "" {
		if n, err = strconv.Atoi(s); err != nil || n < 1 || n > maxCurveSamples {
			http.Error(w, "n must be between 1 and 4096", http.StatusBadRequest)
			return
		}
	}

	fn := timing.Make(data)
	var lut []float64
	if q.Get("mirror") == "true" {
		lut = util.GenerateMirroredLut(fn, n)
	} else {
		lut = util.GenerateLut(fn, n)
	}
	writeJSON(w, lut)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Writing response: %v", err)
	}
}
