package realtime

import "sync"

// Directory tracks room membership both ways: room -> member set and
// connection -> joined rooms, so a disconnect can clean up every membership
// without scanning all rooms.
type Directory struct {
	mu        sync.RWMutex
	rooms     map[string]map[string]struct{} // roomID -> set of connIDs
	connRooms map[string]map[string]struct{} // connID -> set of roomIDs
}

func NewDirectory() *Directory {
	return &Directory{
		rooms:     make(map[string]map[string]struct{}),
		connRooms: make(map[string]map[string]struct{}),
	}
}

// Join adds the connection to the room, creating the room implicitly.
// Joining a room twice is idempotent.
func (d *Directory) Join(roomID, connID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room := d.rooms[roomID]
	if room == nil {
		room = make(map[string]struct{})
		d.rooms[roomID] = room
	}
	room[connID] = struct{}{}

	joined := d.connRooms[connID]
	if joined == nil {
		joined = make(map[string]struct{})
		d.connRooms[connID] = joined
	}
	joined[roomID] = struct{}{}
}

// Leave removes one membership. Empty rooms are pruned.
func (d *Directory) Leave(roomID, connID string) {
	d.mu.Lock()
	d.leaveLocked(roomID, connID)
	d.mu.Unlock()
}

// Members returns the member connection ids of a room. An unknown room is an
// empty room, never an error.
func (d *Directory) Members(roomID string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	room := d.rooms[roomID]
	if len(room) == 0 {
		return nil
	}
	out := make([]string, 0, len(room))
	for id := range room {
		out = append(out, id)
	}
	return out
}

// RoomsOf returns every room the connection currently belongs to.
func (d *Directory) RoomsOf(connID string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	joined := d.connRooms[connID]
	if len(joined) == 0 {
		return nil
	}
	out := make([]string, 0, len(joined))
	for id := range joined {
		out = append(out, id)
	}
	return out
}

// Remove drops the connection from every room it had joined and returns the
// rooms it was removed from. After Remove the connection appears in no room.
func (d *Directory) Remove(connID string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	joined := d.connRooms[connID]
	if len(joined) == 0 {
		delete(d.connRooms, connID)
		return nil
	}
	out := make([]string, 0, len(joined))
	for roomID := range joined {
		out = append(out, roomID)
	}
	for _, roomID := range out {
		d.leaveLocked(roomID, connID)
	}
	return out
}

// Clear drops all membership state. Used on router teardown.
func (d *Directory) Clear() {
	d.mu.Lock()
	d.rooms = make(map[string]map[string]struct{})
	d.connRooms = make(map[string]map[string]struct{})
	d.mu.Unlock()
}

func (d *Directory) leaveLocked(roomID, connID string) {
	if room := d.rooms[roomID]; room != nil {
		delete(room, connID)
		if len(room) == 0 {
			delete(d.rooms, roomID)
		}
	}
	if joined := d.connRooms[connID]; joined != nil {
		delete(joined, roomID)
		if len(joined) == 0 {
			delete(d.connRooms, connID)
		}
	}
}
