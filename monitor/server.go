// Package monitor relays the events of a PTP-IP responder to
// websocket clients and serves connection metrics.
package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/paulbellamy/ratecounter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/hanwen/go-ptpip/log"
	"github.com/hanwen/go-ptpip/ptp"
	"github.com/hanwen/go-ptpip/ptpip"
)

// Source produces the events to relay. *ptpip.Conn implements it.
type Source interface {
	ServeEvents(ctx context.Context, fn func(ptpip.Event)) error
	DataRate() int64
}

type EventPayload struct {
	Code          string    `json:"code"`
	CodeValue     uint16    `json:"code_value"`
	TransactionID uint32    `json:"transaction_id"`
	Params        [3]uint32 `json:"params"`
	Time          time.Time `json:"time"`
}

func NewEventPayload(e ptpip.Event, now time.Time) EventPayload {
	return EventPayload{
		Code:          ptp.CodeName(ptp.EC_names, e.EventCode),
		CodeValue:     uint16(e.EventCode),
		TransactionID: uint32(e.TransactionID),
		Params:        [3]uint32{uint32(e.P1), uint32(e.P2), uint32(e.P3)},
		Time:          now,
	}
}

type InfoPayload struct {
	Device    string `json:"device"`
	Events    int64  `json:"events"`
	EventRate int64  `json:"event_rate"`
	DataRate  int64  `json:"data_rate"`
	Clients   int    `json:"clients"`
}

// Server reads events from a Source and broadcasts them.
type Server struct {
	Device string

	src      Source
	gatherer prometheus.Gatherer

	upgrader     websocket.Upgrader
	eventClients map[*websocket.Conn]bool
	eventLock    sync.Mutex
	infoClients  map[*websocket.Conn]bool
	infoLock     sync.Mutex

	events    chan EventPayload
	eventRate *ratecounter.RateCounter
	total     *atomic.Int64

	infoInterval time.Duration

	eg  *errgroup.Group
	ctx context.Context
	log *log.ChildLogger
}

// NewServer returns a server for src. gatherer backs /metrics and may
// be nil.
func NewServer(ctx context.Context, src Source, gatherer prometheus.Gatherer, logger *log.ChildLogger) *Server {
	eg, egCtx := errgroup.WithContext(ctx)
	if gatherer == nil {
		gatherer = prometheus.NewRegistry()
	}
	return &Server{
		src:          src,
		gatherer:     gatherer,
		eventClients: map[*websocket.Conn]bool{},
		infoClients:  map[*websocket.Conn]bool{},
		events:       make(chan EventPayload, 64),
		eventRate:    ratecounter.NewRateCounter(time.Second),
		total:        atomic.NewInt64(0),
		infoInterval: time.Second,
		eg:           eg,
		ctx:          egCtx,
		log:          logger,
	}
}

// Handler serves /events and /info as websockets, and /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", s.HandleEvents)
	mux.HandleFunc("/info", s.HandleInfo)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return log.HTTPLogHandler(mux)
}

// HTTP handler / WebSocket

func (s *Server) HandleEvents(w http.ResponseWriter, r *http.Request) {
	s.serveClient(w, r, s.eventClients, &s.eventLock)
}

func (s *Server) HandleInfo(w http.ResponseWriter, r *http.Request) {
	s.serveClient(w, r, s.infoClients, &s.infoLock)
}

// serveClient registers the websocket until the client goes away.
// Clients send nothing; reading only detects the close.
func (s *Server) serveClient(w http.ResponseWriter, r *http.Request, clients map[*websocket.Conn]bool, mu *sync.Mutex) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("failed to upgrade %s: %s", r.URL.Path, err)
		return
	}
	defer ws.Close()

	mu.Lock()
	clients[ws] = true
	mu.Unlock()
	s.log.Debugf("client %s on %s", r.RemoteAddr, r.URL.Path)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			mu.Lock()
			delete(clients, ws)
			mu.Unlock()
			return
		}
	}
}

// Workers

// Run relays events until the context is done or the source fails.
func (s *Server) Run() error {
	s.eg.Go(s.workerEvents)
	s.eg.Go(s.workerBroadcastEvents)
	s.eg.Go(s.workerBroadcastInfo)
	err := s.eg.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

func (s *Server) workerEvents() error {
	return s.src.ServeEvents(s.ctx, func(e ptpip.Event) {
		p := NewEventPayload(e, time.Now())
		s.total.Inc()
		s.eventRate.Incr(1)
		s.log.Debugf("event %s %v", p.Code, p.Params)
		select {
		case s.events <- p:
		default:
			s.log.Warningf("dropping event %s, relay is behind", p.Code)
		}
	})
}

func (s *Server) workerBroadcastEvents() error {
	for {
		select {
		case <-s.ctx.Done():
			return nil
		case p := <-s.events:
			j, err := json.Marshal(p)
			if err != nil {
				return err
			}
			broadcast(s.log, j, s.eventClients, &s.eventLock)
		}
	}
}

// Info returns the current counters.
func (s *Server) Info() InfoPayload {
	s.infoLock.Lock()
	clients := len(s.infoClients)
	s.infoLock.Unlock()
	s.eventLock.Lock()
	clients += len(s.eventClients)
	s.eventLock.Unlock()

	return InfoPayload{
		Device:    s.Device,
		Events:    s.total.Load(),
		EventRate: s.eventRate.Rate(),
		DataRate:  s.src.DataRate(),
		Clients:   clients,
	}
}

func (s *Server) workerBroadcastInfo() error {
	tick := time.NewTicker(s.infoInterval)
	defer tick.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return nil
		case <-tick.C:
		}

		j, err := json.Marshal(s.Info())
		if err != nil {
			return err
		}
		broadcast(s.log, j, s.infoClients, &s.infoLock)
	}
}

func broadcast(l *log.ChildLogger, msg []byte, clients map[*websocket.Conn]bool, mu *sync.Mutex) {
	mu.Lock()
	defer mu.Unlock()
	for c := range clients {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			l.Errorf("failed to send to %s: %s", c.RemoteAddr(), err)
		}
	}
}
