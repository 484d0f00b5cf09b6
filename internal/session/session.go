// Package session hosts matches for network clients. Each Session owns one
// battle.Match, ticks it on a ticker and fans snapshots out to websocket
// clients.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"lanewars/internal/battle"
	"lanewars/internal/units"
)

const sendBuffer = 256

// Session is one hosted match. The match is only touched under mu.
// smu is held from snapshot to enqueue so state frames leave in tick order.
// Lock order is smu, mu, cmu.
type Session struct {
	ID       string
	Created  time.Time
	tickRate int

	smu sync.Mutex

	mu    sync.Mutex
	match *battle.Match
	ended *battle.Result // set by the match hook, drained after the tick

	cmu     sync.Mutex
	clients map[*client]bool
	closed  bool // no clients join once Run has returned
}

// New creates a session around a fresh match. tickRate is in ticks per second.
func New(id string, tickRate int, opts ...battle.Option) *Session {
	s := &Session{
		ID:       id,
		Created:  time.Now(),
		tickRate: tickRate,
		match:    battle.New(opts...),
		clients:  make(map[*client]bool),
	}
	s.match.OnMatchEnded = func(r battle.Result) {
		s.ended = &r
	}
	return s
}

// Run ticks the match until ctx is done, then disconnects every client.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()
	defer s.closeClients()

	log.Printf("[SESSION] %s started at %d ticks/s", s.ID, s.tickRate)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[SESSION] %s stopped", s.ID)
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step advances the match one tick and broadcasts the result.
func (s *Session) Step() {
	s.smu.Lock()
	defer s.smu.Unlock()

	s.mu.Lock()
	wasRunning := s.match.Running()
	s.match.Tick()
	snap := s.match.Snapshot()
	ended := s.ended
	s.ended = nil
	s.mu.Unlock()

	if !wasRunning {
		return
	}
	s.broadcast(StateMessage{Type: TypeState, State: snap})
	if ended != nil {
		log.Printf("[SESSION] %s ended, winner %s", s.ID, ended.Winner)
		s.broadcast(endedMessage(*ended))
	}
}

// Spawn buys a player unit. Unknown kinds are reported as an error.
func (s *Session) Spawn(kind units.Kind) (bool, error) {
	if _, err := units.Get(kind); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.TrySpawn(battle.Player, kind), nil
}

// Restart starts a new match in place.
func (s *Session) Restart() {
	s.smu.Lock()
	defer s.smu.Unlock()

	s.mu.Lock()
	s.match.Restart()
	s.ended = nil
	snap := s.match.Snapshot()
	s.mu.Unlock()

	log.Printf("[SESSION] %s restarted", s.ID)
	s.broadcast(StateMessage{Type: TypeState, State: snap})
}

// Snapshot copies the current match state.
func (s *Session) Snapshot() battle.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Snapshot()
}

// ClientCount is the number of connected clients.
func (s *Session) ClientCount() int {
	s.cmu.Lock()
	defer s.cmu.Unlock()
	return len(s.clients)
}

// handle applies one client command and returns the reply, if any.
func (s *Session) handle(cmd Command) any {
	switch cmd.Type {
	case TypeSpawn:
		kind, err := units.ParseKind(cmd.Kind)
		if err != nil {
			log.Printf("[WS] %s: %v", s.ID, err)
			return SpawnResult{Type: TypeSpawnResult, Kind: units.Kind(cmd.Kind), OK: false}
		}
		ok, _ := s.Spawn(kind)
		return SpawnResult{Type: TypeSpawnResult, Kind: kind, OK: ok}
	case TypeRestart:
		s.Restart()
	default:
		log.Printf("[WS] %s: ignoring command %q", s.ID, cmd.Type)
	}
	return nil
}

// broadcast encodes msg once per codec in use and queues it on every client.
// Clients with a full buffer are dropped.
func (s *Session) broadcast(msg any) {
	s.cmu.Lock()
	defer s.cmu.Unlock()

	encoded := make(map[string][]byte, 2)
	for c := range s.clients {
		data, ok := encoded[c.codec.Name()]
		if !ok {
			var err error
			data, err = c.codec.Marshal(msg)
			if err != nil {
				log.Printf("[SESSION] %s: encode %s: %v", s.ID, c.codec.Name(), err)
				continue
			}
			encoded[c.codec.Name()] = data
		}
		select {
		case c.send <- data:
		default:
			log.Printf("[WS] %s: dropping slow client %s", s.ID, c.id)
			s.dropLocked(c)
		}
	}
}

// deliver queues msg for a single client, if it is still registered.
func (s *Session) deliver(c *client, msg any) {
	data, err := c.codec.Marshal(msg)
	if err != nil {
		log.Printf("[SESSION] %s: encode %s: %v", s.ID, c.codec.Name(), err)
		return
	}
	s.cmu.Lock()
	defer s.cmu.Unlock()
	if !s.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
		s.dropLocked(c)
	}
}

// join registers c and queues the current state as its first frame. It
// reports false once the session has stopped.
func (s *Session) join(c *client) bool {
	s.smu.Lock()
	defer s.smu.Unlock()
	if !s.register(c) {
		return false
	}
	s.deliver(c, StateMessage{Type: TypeState, State: s.Snapshot()})
	return true
}

func (s *Session) register(c *client) bool {
	s.cmu.Lock()
	if s.closed {
		s.cmu.Unlock()
		return false
	}
	s.clients[c] = true
	s.cmu.Unlock()
	log.Printf("[WS] %s: client %s joined (%s)", s.ID, c.id, c.codec.Name())
	return true
}

func (s *Session) unregister(c *client) {
	s.cmu.Lock()
	defer s.cmu.Unlock()
	if s.clients[c] {
		s.dropLocked(c)
		log.Printf("[WS] %s: client %s left", s.ID, c.id)
	}
}

func (s *Session) dropLocked(c *client) {
	delete(s.clients, c)
	close(c.send)
}

func (s *Session) closeClients() {
	s.cmu.Lock()
	defer s.cmu.Unlock()
	s.closed = true
	for c := range s.clients {
		s.dropLocked(c)
	}
}
