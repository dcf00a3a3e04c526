package input

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/teslashibe/go-xr/internal/log"
)

// ErrUnknownDevice is returned when subscribing to a device that is not connected.
var ErrUnknownDevice = errors.New("input: unknown device")

// EventType is a select signal from a device.
type EventType int

const (
	SelectStart EventType = iota
	SelectEnd
)

func (t EventType) String() string {
	if t == SelectStart {
		return "selectstart"
	}
	return "selectend"
}

// Event is delivered to listeners. Events may arrive duplicated or out of order.
type Event struct {
	Type     EventType
	DeviceID int
}

// Listener handles an event.
type Listener func(Event)

type listener struct {
	id  uint32
	typ EventType
	fn  Listener
}

// Subscription removes a listener.
type Subscription struct {
	id       uint32
	deviceID int
	d        *Dispatcher
}

// Remove unregisters the listener. Safe to call more than once and after the
// device disconnected.
func (s Subscription) Remove() {
	if s.d == nil {
		return
	}
	ls := s.d.listeners[s.deviceID]
	for i, l := range ls {
		if l.id == s.id {
			s.d.listeners[s.deviceID] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Dispatcher is the per-device listener table. Listeners are dropped when their
// device disconnects. It is not safe for concurrent use.
type Dispatcher struct {
	devices   map[int]Device
	listeners map[int][]listener
	nextID    uint32

	onConnect    []func(Device)
	onDisconnect []func(Device)

	log *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		devices:   make(map[int]Device),
		listeners: make(map[int][]listener),
		log:       log.Component("input"),
	}
}

// OnConnect registers a lifecycle hook run after a device connects.
func (d *Dispatcher) OnConnect(fn func(Device)) {
	d.onConnect = append(d.onConnect, fn)
}

// OnDisconnect registers a lifecycle hook run after a device's listeners are dropped.
func (d *Dispatcher) OnDisconnect(fn func(Device)) {
	d.onDisconnect = append(d.onDisconnect, fn)
}

// Connect registers a device. Reconnecting an id replaces the old device and
// drops its listeners first.
func (d *Dispatcher) Connect(dev Device) {
	if _, ok := d.devices[dev.ID]; ok {
		d.Disconnect(dev.ID)
	}
	d.devices[dev.ID] = dev
	d.log.Info("device connected", "device", dev.ID, "handedness", dev.Handedness.String(), "hand", dev.Hand)
	for _, fn := range d.onConnect {
		fn(dev)
	}
}

// Disconnect removes a device and every listener registered for it.
// Unknown ids are ignored.
func (d *Dispatcher) Disconnect(id int) bool {
	dev, ok := d.devices[id]
	if !ok {
		return false
	}
	delete(d.devices, id)
	delete(d.listeners, id)
	d.log.Info("device disconnected", "device", id)
	for _, fn := range d.onDisconnect {
		fn(dev)
	}
	return true
}

// Device returns a connected device.
func (d *Dispatcher) Device(id int) (Device, bool) {
	dev, ok := d.devices[id]
	return dev, ok
}

// Devices returns connected devices ordered by id.
func (d *Dispatcher) Devices() []Device {
	out := make([]Device, 0, len(d.devices))
	for _, dev := range d.devices {
		out = append(out, dev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Subscribe adds a listener for one event type on one device.
func (d *Dispatcher) Subscribe(deviceID int, typ EventType, fn Listener) (Subscription, error) {
	if _, ok := d.devices[deviceID]; !ok {
		return Subscription{}, fmt.Errorf("subscribe %s on device %d: %w", typ, deviceID, ErrUnknownDevice)
	}
	d.nextID++
	d.listeners[deviceID] = append(d.listeners[deviceID], listener{id: d.nextID, typ: typ, fn: fn})
	return Subscription{id: d.nextID, deviceID: deviceID, d: d}, nil
}

// Listeners returns how many listeners a device has.
func (d *Dispatcher) Listeners(deviceID int) int {
	return len(d.listeners[deviceID])
}

// Dispatch delivers ev to the device's listeners in subscription order and
// returns how many ran. Events for unknown devices are dropped.
func (d *Dispatcher) Dispatch(ev Event) int {
	ls := d.listeners[ev.DeviceID]
	if len(ls) == 0 {
		if _, ok := d.devices[ev.DeviceID]; !ok {
			d.log.Debug("event for unknown device dropped", "device", ev.DeviceID, "event", ev.Type.String())
		}
		return 0
	}

	// Listeners may unsubscribe while running
	snapshot := append([]listener(nil), ls...)
	n := 0
	for _, l := range snapshot {
		if l.typ != ev.Type {
			continue
		}
		l.fn(ev)
		n++
	}
	return n
}
