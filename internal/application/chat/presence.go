package chat

import (
	"sort"
	"sync"
)

// Presence registro de conexiones anunciadas: id de conexión → nombre visible.
// Es seguro para uso concurrente.
type Presence struct {
	mu    sync.Mutex
	names map[string]string
}

// NewPresence crea un registro vacío.
func NewPresence() *Presence {
	return &Presence{names: make(map[string]string)}
}

// Set asocia name a connID (reemplaza un anuncio anterior de la misma conexión).
func (p *Presence) Set(connID, name string) {
	p.mu.Lock()
	p.names[connID] = name
	p.mu.Unlock()
}

// Name devuelve el nombre anunciado por connID.
func (p *Presence) Name(connID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	name, ok := p.names[connID]
	return name, ok
}

// Remove elimina connID y devuelve el nombre que tenía.
func (p *Presence) Remove(connID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	name, ok := p.names[connID]
	delete(p.names, connID)
	return name, ok
}

// IDs devuelve los ids anunciados, ordenados.
func (p *Presence) IDs() []string {
	p.mu.Lock()
	ids := make([]string, 0, len(p.names))
	for id := range p.names {
		ids = append(ids, id)
	}
	p.mu.Unlock()
	sort.Strings(ids)
	return ids
}

// Len cantidad de conexiones anunciadas.
func (p *Presence) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.names)
}
