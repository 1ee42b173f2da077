package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// WriteHandle is the minimal write surface a transport connection
// must offer the registry. Implemented by *transport.Conn; kept as an
// interface here so the server package never imports the transport
// package.
type WriteHandle interface {
	WriteText(payload []byte) error
	Close()
}

// Registry is the process-wide connection registry: a peer id ->
// write handle map plus the open-timer table that the scheduler arms
// and cancels against a tick generation id. Owned separately from any
// one lobby so a disconnect never needs the lobby lock.
type Registry struct {
	mu     sync.Mutex
	peers  map[string]WriteHandle
	timers map[uuid.UUID]*time.Timer
}

// NewRegistry returns an empty Connection Registry.
func NewRegistry() *Registry {
	return &Registry{
		peers:  make(map[string]WriteHandle),
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// Register records the write handle for a newly accepted peer.
func (r *Registry) Register(peerID string, handle WriteHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[peerID] = handle
}

// Unregister drops a peer's write handle. Safe to call more than once.
func (r *Registry) Unregister(peerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.peers, peerID)
}

// SendText enqueues one text frame for a peer. On write failure the
// handle is removed; the caller's own read loop will observe the
// resulting close independently, so no further signal is sent here.
func (r *Registry) SendText(peerID string, payload []byte) {
	r.mu.Lock()
	handle, ok := r.peers[peerID]
	r.mu.Unlock()
	if !ok {
		return
	}

	if err := handle.WriteText(payload); err != nil {
		log.Printf("registry: write to peer %s failed, dropping: %v", peerID, err)
		r.mu.Lock()
		delete(r.peers, peerID)
		r.mu.Unlock()
	}
}

// ArmTimer registers a cancellable deadline keyed by its generation
// id (the tick it was armed for), firing callback once after delay.
// Any previously armed timer for the same tick is replaced.
func (r *Registry) ArmTimer(tick uuid.UUID, delay time.Duration, callback func()) {
	timer := time.AfterFunc(delay, callback)

	r.mu.Lock()
	if old, ok := r.timers[tick]; ok {
		old.Stop()
	}
	r.timers[tick] = timer
	r.mu.Unlock()
}

// CancelTimer stops and removes the open timer for tick, if any.
// Best-effort: Stop returning false means the timer already fired or
// is in flight, which the scheduler's generation check on the other
// side makes safe.
func (r *Registry) CancelTimer(tick uuid.UUID) {
	r.mu.Lock()
	timer, ok := r.timers[tick]
	if ok {
		delete(r.timers, tick)
	}
	r.mu.Unlock()

	if ok {
		timer.Stop()
	}
}

// ClearTimer removes the open-timer entry for tick without stopping
// it, used once a timer's own callback has already fired.
func (r *Registry) ClearTimer(tick uuid.UUID) {
	r.mu.Lock()
	delete(r.timers, tick)
	r.mu.Unlock()
}
